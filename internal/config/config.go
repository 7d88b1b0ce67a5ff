package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/san-kum/logofall/internal/field"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultFPS    = 60
	DefaultFrames = 600
	DefaultPreset = "devicons"

	deviconBase = "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Logos    []field.Logo   `yaml:"logos"`
	Size     float64        `yaml:"size"`
	SpeedMin float64        `yaml:"speed_min"`
	SpeedMax float64        `yaml:"speed_max"`
	Viewport field.Viewport `yaml:"viewport"`
	FPS      int            `yaml:"fps"`
	Frames   int            `yaml:"frames"`
	Seed     int64          `yaml:"seed"`
	Scenario string         `yaml:"scenario,omitempty"`
}

// DeviconLogos are the default falling logos, served from the devicon CDN.
var DeviconLogos = []field.Logo{
	{ImageRef: deviconBase + "react/react-original.svg", Label: "React.js"},
	{ImageRef: deviconBase + "python/python-original.svg", Label: "Python"},
	{ImageRef: deviconBase + "django/django-plain.svg", Label: "Django"},
	{ImageRef: deviconBase + "javascript/javascript-original.svg", Label: "JavaScript"},
	{ImageRef: deviconBase + "nodejs/nodejs-original.svg", Label: "Node.js"},
	{ImageRef: deviconBase + "mysql/mysql-original.svg", Label: "MySQL"},
}

func DefaultConfig() *Config {
	return &Config{
		Logos:    append([]field.Logo(nil), DeviconLogos...),
		Size:     field.DefaultSize,
		SpeedMin: field.DefaultSpeedMin,
		SpeedMax: field.DefaultSpeedMax,
		Viewport: field.Viewport{Width: DefaultWidth, Height: DefaultHeight},
		FPS:      DefaultFPS,
		Frames:   DefaultFrames,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the host cannot run. A viewport smaller
// than a particle is accepted; the field degrades to static columns.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %f", ErrInvalid, c.Size)
	}
	if c.SpeedMin <= 0 {
		return fmt.Errorf("%w: speed_min must be positive, got %f", ErrInvalid, c.SpeedMin)
	}
	if c.SpeedMax < c.SpeedMin {
		return fmt.Errorf("%w: speed_max %f below speed_min %f", ErrInvalid, c.SpeedMax, c.SpeedMin)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalid, c.Frames)
	}
	return nil
}

func (c *Config) FieldConfig() field.Config {
	return field.Config{Size: c.Size, SpeedMin: c.SpeedMin, SpeedMax: c.SpeedMax}
}

func (c *Config) Interval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

func (c *Config) Clone() *Config {
	cp := *c
	cp.Logos = append([]field.Logo(nil), c.Logos...)
	return &cp
}
