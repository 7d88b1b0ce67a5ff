package field

const (
	DefaultSize     = 100.0
	DefaultSpeedMin = 0.6
	DefaultSpeedMax = 1.5

	// HighlightFactor scales the particle size into the highlight radius.
	HighlightFactor = 0.55

	// SpawnRunway bounds the random extra distance above the viewport a
	// particle starts at, so the initial layout does not enter all at once.
	SpawnRunway = 250.0
)

// OffscreenPointer is the pointer position before any movement is observed.
var OffscreenPointer = Pointer{X: -1000, Y: -1000}

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

type Pointer Vec2

type Viewport struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Logo is the opaque description of a particle's visual. The engine never
// interprets either field.
type Logo struct {
	ImageRef string `json:"image_ref" yaml:"image_ref"`
	Label    string `json:"label" yaml:"label"`
}

type Particle struct {
	Logo
	Position    Vec2    `json:"position"`
	FallSpeed   float64 `json:"fall_speed"`
	Highlighted bool    `json:"highlighted"`
}

// Center returns the particle's center for a square of the given size.
func (p Particle) Center(size float64) Vec2 {
	return Vec2{X: p.Position.X + size/2, Y: p.Position.Y + size/2}
}

type Config struct {
	Size     float64
	SpeedMin float64
	SpeedMax float64
}

func DefaultConfig() Config {
	return Config{
		Size:     DefaultSize,
		SpeedMin: DefaultSpeedMin,
		SpeedMax: DefaultSpeedMax,
	}
}

func (c Config) withDefaults() Config {
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.SpeedMin <= 0 {
		c.SpeedMin, c.SpeedMax = DefaultSpeedMin, DefaultSpeedMax
	}
	if c.SpeedMax < c.SpeedMin {
		c.SpeedMax = c.SpeedMin
	}
	return c
}

// Rand is the random source used for spawn and respawn sampling.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Observer is notified after every committed frame. The slice is a copy
// shared by all observers and metrics of that frame.
type Observer interface {
	OnFrame(frame int, particles []Particle)
}

type Metric interface {
	Name() string
	Observe(frame int, particles []Particle)
	Value() float64
	Reset()
}

func clone(ps []Particle) []Particle {
	c := make([]Particle, len(ps))
	copy(c, ps)
	return c
}
