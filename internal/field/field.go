package field

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

type Field struct {
	cfg     Config
	logos   []Logo
	pointer atomic.Pointer[Pointer]

	mu        sync.Mutex
	rng       Rand
	particles []Particle
	frame     int
	metrics   []Metric
	observers []Observer
}

// New spawns a field for the given logos. A nil rng is replaced by a
// time-seeded source.
func New(logos []Logo, vp Viewport, cfg Config, rng Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cfg = cfg.withDefaults()
	f := &Field{
		cfg:       cfg,
		logos:     append([]Logo(nil), logos...),
		rng:       rng,
		particles: Spawn(logos, vp, cfg, rng),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	ptr := OffscreenPointer
	f.pointer.Store(&ptr)
	return f
}

func (f *Field) Config() Config { return f.cfg }
func (f *Field) Len() int       { return len(f.logos) }

func (f *Field) AddMetric(m Metric) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metrics = append(f.metrics, m)
}

func (f *Field) AddObserver(o Observer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers, o)
}

// SetPointer overwrites the pointer. Only the latest value is ever read.
func (f *Field) SetPointer(x, y float64) {
	f.pointer.Store(&Pointer{X: x, Y: y})
}

func (f *Field) Pointer() Pointer {
	return *f.pointer.Load()
}

// Step advances one frame against the latest pointer sample and returns the
// new snapshot.
func (f *Field) Step(vp Viewport) []Particle {
	ptr := f.Pointer()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.particles = Advance(f.particles, vp, ptr, f.cfg.Size, f.rng)
	f.frame++

	if len(f.metrics) > 0 || len(f.observers) > 0 {
		shared := clone(f.particles)
		for _, m := range f.metrics {
			m.Observe(f.frame, shared)
		}
		for _, o := range f.observers {
			o.OnFrame(f.frame, shared)
		}
	}
	return clone(f.particles)
}

// Reset moves every particle back above the viewport and zeroes the frame
// counter and metrics. Fall speeds are kept.
func (f *Field) Reset(vp Viewport) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := clone(f.particles)
	for i := range next {
		next[i].Position = spawnPosition(f.rng, vp, f.cfg.Size)
		next[i].Highlighted = false
	}
	f.particles = next
	f.frame = 0
	for _, m := range f.metrics {
		m.Reset()
	}
}

func (f *Field) Snapshot() []Particle {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.particles)
}

func (f *Field) Frame() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame
}

func (f *Field) Metrics() map[string]float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]float64, len(f.metrics))
	for _, m := range f.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
