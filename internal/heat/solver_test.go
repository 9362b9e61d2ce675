package heat_test

import (
	"errors"
	"image"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heatsim/internal/heat"
)

func rows(values [][]float32) heat.Seeder {
	return heat.SeederFunc(func(f *heat.Field) {
		for y, row := range values {
			for x, v := range row {
				f.Set(x, y, v)
			}
		}
	})
}

func uniform(v float32) heat.Seeder {
	return heat.SeederFunc(func(f *heat.Field) { f.Fill(v) })
}

// checker seeds alternating hot and cold cells.
func checker(f *heat.Field) {
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			if (x+y)%2 == 0 {
				f.Set(x, y, 90)
			} else {
				f.Set(x, y, 10)
			}
		}
	}
}

func params(w, h, chunk int) heat.Params {
	p := heat.DefaultParams()
	p.Width, p.Height, p.ChunkSize = w, h, chunk
	return p
}

func sum(values []float32) float64 {
	total := 0.0
	for _, v := range values {
		total += float64(v)
	}
	return total
}

var _ = Describe("Solver", func() {
	const dt = float32(1.0 / 64)

	Describe("construction", func() {
		DescribeTable("rejects invalid configuration",
			func(mutate func(*heat.Params), sentinel error) {
				p := heat.DefaultParams()
				mutate(&p)
				_, err := heat.New(p, nil)
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, sentinel)).To(BeTrue())
				var cfgErr *heat.ConfigError
				Expect(errors.As(err, &cfgErr)).To(BeTrue())
			},
			Entry("zero width", func(p *heat.Params) { p.Width = 0 }, heat.ErrInvalidGrid),
			Entry("zero height", func(p *heat.Params) { p.Height = 0 }, heat.ErrInvalidGrid),
			Entry("zero chunk", func(p *heat.Params) { p.ChunkSize = 0 }, heat.ErrInvalidChunk),
			Entry("zero mass", func(p *heat.Params) { p.TileMass = 0 }, heat.ErrInvalidMaterial),
			Entry("negative mass", func(p *heat.Params) { p.TileMass = -1 }, heat.ErrInvalidMaterial),
			Entry("zero heat capacity", func(p *heat.Params) { p.TileHeatCapacity = 0 }, heat.ErrInvalidMaterial),
			Entry("negative speed", func(p *heat.Params) { p.HeatTransferSpeed = -0.1 }, heat.ErrInvalidRate),
			Entry("inverted bounds", func(p *heat.Params) { p.MinHeat, p.MaxHeat = 100, 0 }, heat.ErrInvalidBounds),
			Entry("unbounded floor", func(p *heat.Params) { p.MinHeat = float32(math.Inf(-1)) }, heat.ErrInvalidBounds),
			Entry("unbounded ceiling", func(p *heat.Params) { p.MaxHeat = float32(math.Inf(1)) }, heat.ErrInvalidBounds),
		)

		It("clamps seeded temperatures into bounds", func() {
			s, err := heat.New(params(2, 1, 1), rows([][]float32{{-50, 250}}))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Field().Values()).To(Equal([]float32{0, 100}))
		})

		It("seeds a non-number as the floor", func() {
			s, err := heat.New(params(2, 1, 1), rows([][]float32{{float32(math.NaN()), 40}}))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Field().Values()).To(Equal([]float32{0, 40}))
		})
	})

	Describe("sweep cadence", func() {
		DescribeTable("integrates exactly once every ceil(W/C)*ceil(H/C) ticks",
			func(w, h, c, expected int) {
				s, err := heat.New(params(w, h, c), heat.SeederFunc(checker))
				Expect(err).NotTo(HaveOccurred())
				Expect(s.TicksPerSweep()).To(Equal(expected))

				for tick := 1; tick <= 3*expected; tick++ {
					r := s.Tick(dt)
					Expect(r.SweepComplete).To(Equal(tick%expected == 0), "tick %d", tick)
				}
				Expect(s.Sweeps()).To(Equal(3))
				Expect(s.Ticks()).To(Equal(3 * expected))
			},
			Entry("even division", 4, 4, 2, 4),
			Entry("single chunk", 16, 16, 16, 1),
			Entry("chunk larger than grid", 3, 5, 8, 1),
			Entry("partial trailing chunks", 5, 3, 2, 6),
			Entry("one cell chunks", 3, 2, 1, 6),
		)

		It("leaves temperatures untouched until the sweep completes", func() {
			s, err := heat.New(params(4, 4, 2), heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())
			before := s.Snapshot(nil)
			for i := 0; i < 3; i++ {
				Expect(s.Tick(dt).SweepComplete).To(BeFalse())
				Expect(s.Field().Values()).To(Equal(before))
			}
			Expect(s.Tick(dt).SweepComplete).To(BeTrue())
			Expect(s.Field().Values()).NotTo(Equal(before))
		})

		It("completes a sweep via Sweep", func() {
			s, err := heat.New(params(5, 3, 2), heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())
			ticks, _ := s.Sweep(dt)
			Expect(ticks).To(Equal(6))
			Expect(s.Cursor()).To(Equal(heat.Cursor{}))
		})
	})

	Describe("cursor", func() {
		It("visits every chunk once per sweep in row-major order", func() {
			s, err := heat.New(params(5, 3, 2), nil)
			Expect(err).NotTo(HaveOccurred())
			var visited []image.Rectangle
			for i := 0; i < s.TicksPerSweep(); i++ {
				visited = append(visited, s.Tick(dt).Chunk)
			}
			Expect(visited).To(Equal([]image.Rectangle{
				image.Rect(0, 0, 2, 2), image.Rect(2, 0, 4, 2), image.Rect(4, 0, 5, 2),
				image.Rect(0, 2, 2, 3), image.Rect(2, 2, 4, 3), image.Rect(4, 2, 5, 3),
			}))
		})

		It("returns to the origin only after the last chunk", func() {
			s, err := heat.New(params(4, 4, 2), nil)
			Expect(err).NotTo(HaveOccurred())
			cursors := []heat.Cursor{}
			for i := 0; i < 4; i++ {
				s.Tick(dt)
				cursors = append(cursors, s.Cursor())
			}
			Expect(cursors).To(Equal([]heat.Cursor{{1, 0}, {0, 1}, {1, 1}, {0, 0}}))
		})
	})

	Describe("conservation", func() {
		It("keeps the accumulator balanced at every tick of a sweep", func() {
			s, err := heat.New(params(6, 5, 2), heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < s.TicksPerSweep()-1; i++ {
				s.Tick(dt)
				Expect(sum(s.PendingFlux())).To(BeNumerically("~", 0, 1e-3))
			}
			Expect(s.Tick(dt).SweepComplete).To(BeTrue())
			Expect(sum(s.NetFlux())).To(BeNumerically("~", 0, 1e-3))
			Expect(sum(s.PendingFlux())).To(BeZero())
		})

		It("preserves total heat when nothing is clamped", func() {
			s, err := heat.New(params(8, 8, 3), heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())
			before := sum(s.Field().Values())
			for i := 0; i < 10; i++ {
				_, clamped := s.Sweep(dt)
				Expect(clamped).To(BeZero())
			}
			Expect(sum(s.Field().Values())).To(BeNumerically("~", before, 1e-2))
		})
	})

	Describe("boundedness", func() {
		It("clamps every cell into [MinHeat, MaxHeat]", func() {
			p := params(6, 6, 2)
			p.HeatTransferSpeed = 1
			s, err := heat.New(p, heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())
			clampedTotal := 0
			for i := 0; i < 5; i++ {
				_, clamped := s.Sweep(dt)
				clampedTotal += clamped
				for _, t := range s.Field().Values() {
					Expect(t).To(BeNumerically(">=", p.MinHeat))
					Expect(t).To(BeNumerically("<=", p.MaxHeat))
				}
			}
			Expect(clampedTotal).To(BeNumerically(">", 0))
		})

		It("stays finite and bounded at temperatures where the conductivity overflows float32", func() {
			p := params(2, 2, 1)
			p.MaxHeat = 1e23
			s, err := heat.New(p, uniform(1e22))
			Expect(err).NotTo(HaveOccurred())
			s.Sweep(dt)
			for _, t := range s.Field().Values() {
				Expect(t).To(Equal(float32(1e22)))
			}

			s.Reseed(rows([][]float32{{1e23, 0}, {0, 1e23}}))
			for i := 0; i < 3; i++ {
				s.Sweep(dt)
				for _, t := range s.Field().Values() {
					Expect(math.IsNaN(float64(t))).To(BeFalse())
					Expect(t).To(BeNumerically(">=", p.MinHeat))
					Expect(t).To(BeNumerically("<=", p.MaxHeat))
				}
			}
		})
	})

	Describe("equilibrium", func() {
		It("leaves a uniform field unchanged", func() {
			s, err := heat.New(params(7, 5, 3), uniform(50))
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 20; i++ {
				s.Sweep(dt)
			}
			for _, t := range s.Field().Values() {
				Expect(t).To(Equal(float32(50)))
			}
			for _, f := range s.NetFlux() {
				Expect(f).To(BeZero())
			}
		})
	})

	Describe("hot bottom row", func() {
		It("moves heat from row 3 into row 2 after one sweep", func() {
			s, err := heat.New(params(4, 4, 2), rows([][]float32{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{100, 100, 100, 100},
			}))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 3; i++ {
				Expect(s.Tick(dt).SweepComplete).To(BeFalse())
			}
			Expect(s.Tick(dt).SweepComplete).To(BeTrue())

			f, g := s.Field(), s.Grid()
			for x := 0; x < 4; x++ {
				Expect(s.NetFlux()[g.Index(x, 2)]).To(BeNumerically(">", 0))
				Expect(f.At(x, 3)).To(BeNumerically("<", 100))
				Expect(f.At(x, 2)).To(BeNumerically(">", 0))
				Expect(f.At(x, 1)).To(BeZero())
			}
			for _, t := range f.Values() {
				Expect(t).To(BeNumerically(">=", 0))
				Expect(t).To(BeNumerically("<=", 100))
			}
		})
	})

	Describe("chunking", func() {
		It("produces the same field as a single-chunk shadow solver", func() {
			incremental, err := heat.New(params(9, 7, 2), heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())
			shadow, err := heat.New(params(9, 7, 9), heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 5; i++ {
				incremental.Sweep(dt)
				shadow.Sweep(dt)
			}
			a, b := incremental.Field().Values(), shadow.Field().Values()
			for i := range a {
				Expect(a[i]).To(BeNumerically("~", b[i], 1e-3))
			}
			Expect(incremental.Ticks()).To(Equal(5 * 20))
			Expect(shadow.Ticks()).To(Equal(5))
		})
	})

	Describe("step modes", func() {
		It("integrates over the whole sweep in StepSweep mode", func() {
			tick := params(4, 4, 2)
			sweep := tick
			sweep.StepMode = heat.StepSweep
			single := params(4, 4, 4)

			a, _ := heat.New(tick, heat.SeederFunc(checker))
			b, _ := heat.New(sweep, heat.SeederFunc(checker))
			c, _ := heat.New(single, heat.SeederFunc(checker))

			a.Sweep(dt)
			b.Sweep(dt)
			c.Tick(4 * dt)

			Expect(b.Field().Values()).NotTo(Equal(a.Field().Values()))
			for i, v := range b.Field().Values() {
				Expect(v).To(BeNumerically("~", c.Field().Values()[i], 1e-4))
			}
		})
	})

	Describe("Reseed", func() {
		It("restarts the sweep in progress", func() {
			s, err := heat.New(params(4, 4, 2), heat.SeederFunc(checker))
			Expect(err).NotTo(HaveOccurred())
			s.Tick(dt)
			s.Reseed(uniform(20))
			Expect(s.Cursor()).To(Equal(heat.Cursor{}))
			Expect(s.Ticks()).To(BeZero())
			Expect(sum(s.PendingFlux())).To(BeZero())
			Expect(s.Field().At(3, 3)).To(Equal(float32(20)))
		})
	})
})
