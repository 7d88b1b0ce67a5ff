package metrics

import "github.com/san-kum/logofall/internal/field"

// Respawns counts respawn events. Particles only ever move down between
// respawns, so a smaller y than the previous frame marks one.
type Respawns struct {
	name  string
	prev  []float64
	count int
}

func NewRespawns() *Respawns {
	return &Respawns{name: "respawns"}
}

func (r *Respawns) Name() string { return r.name }

func (r *Respawns) Observe(frame int, ps []field.Particle) {
	if len(r.prev) == len(ps) {
		for i, p := range ps {
			if p.Position.Y < r.prev[i] {
				r.count++
			}
		}
	}
	if cap(r.prev) < len(ps) {
		r.prev = make([]float64, len(ps))
	}
	r.prev = r.prev[:len(ps)]
	for i, p := range ps {
		r.prev[i] = p.Position.Y
	}
}

func (r *Respawns) Value() float64 { return float64(r.count) }

func (r *Respawns) Reset() {
	r.prev = r.prev[:0]
	r.count = 0
}
