package metrics

import "github.com/san-kum/logofall/internal/field"

// HighlightRatio is the mean fraction of highlighted particles per frame.
type HighlightRatio struct {
	name    string
	sum     float64
	samples int
}

func NewHighlightRatio() *HighlightRatio {
	return &HighlightRatio{
		name: "highlight_ratio",
	}
}

func (h *HighlightRatio) Name() string {
	return h.name
}

func (h *HighlightRatio) Observe(frame int, ps []field.Particle) {
	if len(ps) == 0 {
		return
	}
	h.sum += float64(Highlighted(ps)) / float64(len(ps))
	h.samples++
}

func (h *HighlightRatio) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return h.sum / float64(h.samples)
}

func (h *HighlightRatio) Reset() {
	h.sum = 0
	h.samples = 0
}

// Highlighted counts the highlighted particles in one frame.
func Highlighted(ps []field.Particle) int {
	n := 0
	for _, p := range ps {
		if p.Highlighted {
			n++
		}
	}
	return n
}
