package config

import (
	"sort"

	"github.com/san-kum/logofall/internal/field"
)

var Presets = map[string]*Config{
	"devicons": DefaultConfig(),
	"drizzle": {
		Logos: DeviconLogos[:3], Size: 64, SpeedMin: 0.3, SpeedMax: 0.8,
		Viewport: field.Viewport{Width: 800, Height: 600}, FPS: 60, Frames: 1200,
	},
	"downpour": {
		Logos: append(append([]field.Logo(nil), DeviconLogos...), DeviconLogos...), Size: 48, SpeedMin: 2.0, SpeedMax: 4.5,
		Viewport: field.Viewport{Width: 1280, Height: 720}, FPS: 60, Frames: 600,
	},
	"mobile": {
		Logos: DeviconLogos, Size: 56, SpeedMin: 0.6, SpeedMax: 1.5,
		Viewport: field.Viewport{Width: 390, Height: 844}, FPS: 60, Frames: 900,
	},
	"terminal": {
		Logos: DeviconLogos, Size: 40, SpeedMin: 0.4, SpeedMax: 1.0,
		Viewport: field.Viewport{Width: 800, Height: 480}, FPS: 30, Frames: 600,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
