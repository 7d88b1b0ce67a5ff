package field_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/logofall/internal/field"
)

var devicons = []field.Logo{
	{ImageRef: "react-original.svg", Label: "React.js"},
	{ImageRef: "python-original.svg", Label: "Python"},
	{ImageRef: "django-plain.svg", Label: "Django"},
	{ImageRef: "javascript-original.svg", Label: "JavaScript"},
	{ImageRef: "nodejs-original.svg", Label: "Node.js"},
	{ImageRef: "mysql-original.svg", Label: "MySQL"},
}

var _ = Describe("Field", func() {
	var (
		vp  field.Viewport
		cfg field.Config
		f   *field.Field
	)

	BeforeEach(func() {
		vp = field.Viewport{Width: 800, Height: 600}
		cfg = field.DefaultConfig()
		f = field.New(devicons, vp, cfg, rand.New(rand.NewSource(2024)))
	})

	It("spawns one particle per logo in input order", func() {
		ps := f.Snapshot()
		Expect(ps).To(HaveLen(len(devicons)))
		for i, p := range ps {
			Expect(p.Logo).To(Equal(devicons[i]))
			Expect(p.Highlighted).To(BeFalse())
			Expect(p.Position.Y).To(BeNumerically("<=", -cfg.Size))
			Expect(p.Position.Y).To(BeNumerically(">=", -cfg.Size-field.SpawnRunway))
		}
	})

	It("keeps every particle within bounds across many frames", func() {
		for frame := 0; frame < 3000; frame++ {
			for _, p := range f.Step(vp) {
				Expect(p.Position.X).To(BeNumerically(">=", 0))
				Expect(p.Position.X).To(BeNumerically("<=", vp.Width-cfg.Size))
				Expect(p.Position.Y).To(BeNumerically("<=", vp.Height))
			}
		}
	})

	It("never changes a particle's fall speed", func() {
		speeds := make([]float64, 0, len(devicons))
		for _, p := range f.Snapshot() {
			Expect(p.FallSpeed).To(BeNumerically(">=", cfg.SpeedMin))
			Expect(p.FallSpeed).To(BeNumerically("<=", cfg.SpeedMax))
			speeds = append(speeds, p.FallSpeed)
		}
		for frame := 0; frame < 2000; frame++ {
			for i, p := range f.Step(vp) {
				Expect(p.FallSpeed).To(Equal(speeds[i]))
			}
		}
	})

	It("conserves the particle count", func() {
		for frame := 0; frame < 500; frame++ {
			Expect(f.Step(vp)).To(HaveLen(len(devicons)))
		}
	})

	It("respawns with the viewport passed to the step", func() {
		narrow := field.Viewport{Width: 300, Height: 200}
		for frame := 0; frame < 2000; frame++ {
			for _, p := range f.Step(narrow) {
				if p.Position.Y == -cfg.Size {
					Expect(p.Position.X).To(BeNumerically("<=", narrow.Width-cfg.Size))
				}
			}
		}
	})

	Context("with the pointer parked on a particle", func() {
		It("highlights only while the pointer is within range", func() {
			ps := f.Step(vp)
			c := ps[0].Center(cfg.Size)
			f.SetPointer(c.X, c.Y+ps[0].FallSpeed)

			Expect(f.Step(vp)[0].Highlighted).To(BeTrue())

			f.SetPointer(-1000, -1000)
			for _, p := range f.Step(vp) {
				Expect(p.Highlighted).To(BeFalse())
			}
		})
	})

	Context("with a viewport smaller than a particle", func() {
		It("degrades to static columns instead of failing", func() {
			tiny := field.Viewport{Width: 40, Height: 0}
			g := field.New(devicons, tiny, cfg, rand.New(rand.NewSource(1)))
			for frame := 0; frame < 10; frame++ {
				for _, p := range g.Step(tiny) {
					Expect(p.Position.X).To(BeZero())
					Expect(p.Position.Y).To(BeNumerically("<=", tiny.Height))
				}
			}
		})
	})
})
