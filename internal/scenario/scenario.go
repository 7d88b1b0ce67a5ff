// Package scenario replays scripted pointer movement against a field, so
// highlight behaviour can be reproduced without a real pointing device.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/logofall/internal/field"
	"gopkg.in/yaml.v3"
)

var ErrEmptyStep = errors.New("scenario: step must cover at least one frame")

// Scenario is an ordered list of pointer steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step holds the pointer for Frames frames. When To is set the pointer moves
// linearly from Pointer to To over the step. A nil Pointer parks the pointer
// off screen.
type Step struct {
	Frames  int            `yaml:"frames"`
	Pointer *field.Pointer `yaml:"pointer,omitempty"`
	To      *field.Pointer `yaml:"to,omitempty"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	for i, st := range s.Steps {
		if st.Frames <= 0 {
			return fmt.Errorf("step %d: %w", i+1, ErrEmptyStep)
		}
	}
	return nil
}

func (s *Scenario) TotalFrames() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Frames
	}
	return n
}

// PointerAt returns the scripted pointer for a zero-based frame. Frames past
// the end keep the final position of the last step.
func (s *Scenario) PointerAt(frame int) field.Pointer {
	if len(s.Steps) == 0 {
		return field.OffscreenPointer
	}
	for _, st := range s.Steps {
		if frame < st.Frames {
			return st.at(frame)
		}
		frame -= st.Frames
	}
	last := s.Steps[len(s.Steps)-1]
	return last.at(last.Frames - 1)
}

func (st Step) at(offset int) field.Pointer {
	if st.Pointer == nil {
		return field.OffscreenPointer
	}
	if st.To == nil || st.Frames <= 1 {
		return *st.Pointer
	}
	t := float64(offset) / float64(st.Frames-1)
	return field.Pointer{
		X: st.Pointer.X + (st.To.X-st.Pointer.X)*t,
		Y: st.Pointer.Y + (st.To.Y-st.Pointer.Y)*t,
	}
}

// Apply feeds the scripted pointer for frame into f.
func (s *Scenario) Apply(f *field.Field, frame int) {
	p := s.PointerAt(frame)
	f.SetPointer(p.X, p.Y)
}

// Sweep moves the pointer left to right across the middle of the viewport
// and back, once per pass.
func Sweep(vp field.Viewport, framesPerPass, passes int) *Scenario {
	s := &Scenario{Name: "sweep", Description: "horizontal pointer sweep"}
	y := vp.Height / 2
	left, right := field.Pointer{X: 0, Y: y}, field.Pointer{X: vp.Width, Y: y}
	for i := 0; i < passes; i++ {
		from, to := left, right
		if i%2 == 1 {
			from, to = right, left
		}
		s.Steps = append(s.Steps, Step{Frames: framesPerPass, Pointer: &from, To: &to})
	}
	return s
}
