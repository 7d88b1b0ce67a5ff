package field

import "math"

// uniform samples [lo, hi]. An empty or inverted range collapses to lo.
func uniform(rng Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

func spawnX(rng Rand, vp Viewport, size float64) float64 {
	return uniform(rng, 0, vp.Width-size)
}

// spawnPosition places a particle strictly above the viewport with a random
// amount of runway.
func spawnPosition(rng Rand, vp Viewport, size float64) Vec2 {
	x := spawnX(rng, vp, size)
	return Vec2{X: x, Y: -uniform(rng, 0, SpawnRunway) - size}
}

// Spawn builds the initial layout, one particle per logo in input order.
// Particles start strictly above the viewport.
func Spawn(logos []Logo, vp Viewport, cfg Config, rng Rand) []Particle {
	cfg = cfg.withDefaults()
	ps := make([]Particle, len(logos))
	for i, l := range logos {
		ps[i] = Particle{
			Logo:      l,
			Position:  spawnPosition(rng, vp, cfg.Size),
			FallSpeed: uniform(rng, cfg.SpeedMin, cfg.SpeedMax),
		}
	}
	return ps
}

// Advance computes the next frame. The input slice is left untouched; the
// returned slice has the same length and order.
func Advance(ps []Particle, vp Viewport, ptr Pointer, size float64, rng Rand) []Particle {
	next := make([]Particle, len(ps))
	for i, p := range ps {
		x, y := p.Position.X, p.Position.Y+p.FallSpeed
		if y > vp.Height {
			x, y = spawnX(rng, vp, size), -size
		}
		p.Position = Vec2{X: x, Y: y}
		p.Highlighted = Near(ptr, p.Position, size)
		next[i] = p
	}
	return next
}

// Near reports whether ptr is within the highlight radius of the center of
// a particle at pos.
func Near(ptr Pointer, pos Vec2, size float64) bool {
	dx := ptr.X - (pos.X + size/2)
	dy := ptr.Y - (pos.Y + size/2)
	return math.Hypot(dx, dy) < size*HighlightFactor
}
