package metrics

import "github.com/san-kum/logofall/internal/field"

type MeanDepth struct {
	sum     float64
	samples int
}

func NewMeanDepth() *MeanDepth { return &MeanDepth{} }

func (m *MeanDepth) Name() string { return "mean_depth" }

func (m *MeanDepth) Observe(frame int, ps []field.Particle) {
	for _, p := range ps {
		m.sum += p.Position.Y
		m.samples++
	}
}

func (m *MeanDepth) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanDepth) Reset() {
	m.sum = 0
	m.samples = 0
}

// Default returns the metrics attached to every run.
func Default() []field.Metric {
	return []field.Metric{NewHighlightRatio(), NewRespawns(), NewMeanDepth()}
}
