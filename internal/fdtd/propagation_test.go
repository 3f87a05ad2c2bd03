package fdtd_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/fdtd2d/internal/analytic"
	"github.com/san-kum/fdtd2d/internal/fdtd"
	"github.com/san-kum/fdtd2d/internal/fdtd1d"
)

func span(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// fill builds an nx×ny initial condition from f(x, y).
func fill(x, y []float64, f func(x, y float64) float64) [][]float64 {
	rows := make([][]float64, len(x))
	for i := range rows {
		rows[i] = make([]float64, len(y))
		for j := range rows[i] {
			rows[i][j] = f(x[i], y[j])
		}
	}
	return rows
}

func newSolver(x, y []float64, opts ...fdtd.Option) *fdtd.Solver {
	s, err := fdtd.New(x, y, opts...)
	Expect(err).NotTo(HaveOccurred())
	return s
}

// energyTrace records the field energy after every step.
func energyTrace(s *fdtd.Solver) *[]float64 {
	trace := make([]float64, 0, 256)
	s.AddObserver(fdtd.ObserverFunc(func(v fdtd.View, t, dt float64) {
		trace = append(trace, v.Energy())
	}))
	return &trace
}

var _ = Describe("Free-space propagation", func() {
	const width = 0.25
	var x, y []float64

	BeforeEach(func() {
		x = span(-5, 5, 101)
		y = span(-5, 5, 101)
	})

	It("splits a band invariant along y into two pulses moving along x", func() {
		s := newSolver(x, y)
		Expect(s.SetInitialCondition(fill(x, y, func(x, _ float64) float64 {
			return fdtd1d.Gaussian(x, 0, width)
		}))).To(Succeed())

		dt := fdtd.CourantStep(s.Grid(), 0.5)
		hz, err := s.RunUntil(2, dt)
		Expect(err).NotTo(HaveOccurred())

		want := analytic.TravelingWave(x, 0, width, 2)
		for _, j := range []int{10, 50, 90} {
			Expect(stat.Correlation(hz.AlongX(j), want, nil)).To(BeNumerically(">=", 0.99), "y index %d", j)
		}
	})

	It("splits a band invariant along x into two pulses moving along y", func() {
		s := newSolver(x, y)
		Expect(s.SetInitialCondition(fill(x, y, func(_, y float64) float64 {
			return fdtd1d.Gaussian(y, 0, width)
		}))).To(Succeed())

		dt := fdtd.CourantStep(s.Grid(), 0.5)
		hz, err := s.RunUntil(2, dt)
		Expect(err).NotTo(HaveOccurred())

		want := analytic.TravelingWave(y, 0, width, 2)
		for _, i := range []int{10, 50, 90} {
			Expect(stat.Correlation(hz.AlongY(i), want, nil)).To(BeNumerically(">=", 0.99), "x index %d", i)
		}
	})

	It("matches the one-dimensional solver on every row of an x band", func() {
		s := newSolver(x, y)
		Expect(s.SetInitialCondition(fill(x, y, func(x, _ float64) float64 {
			return fdtd1d.Gaussian(x, 0, width)
		}))).To(Succeed())
		dt := fdtd.CourantStep(s.Grid(), 0.5)
		hz, err := s.RunUntil(2, dt)
		Expect(err).NotTo(HaveOccurred())

		line, err := fdtd1d.New(x)
		Expect(err).NotTo(HaveOccurred())
		Expect(line.SetInitialCondition(fdtd1d.GaussianSlice(x, 0, width))).To(Succeed())
		want, err := line.RunUntil(2, dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(line.Time()).To(BeNumerically("~", s.Time(), 1e-12))

		for _, j := range []int{0, 37, 100} {
			got := hz.AlongX(j)
			for i := range want {
				Expect(got[i]).To(BeNumerically("~", want[i], 1e-12), "node (%d, %d)", i, j)
			}
		}
	})
})

var _ = Describe("Absorbing layer", func() {
	var (
		x, y []float64
		hz0  [][]float64
	)

	BeforeEach(func() {
		x = span(-50.5, 50.5, 101)
		y = span(-50.5, 50.5, 101)
		hz0 = fill(x, y, func(x, y float64) float64 {
			return fdtd1d.Gaussian(x, 0, 3) * fdtd1d.Gaussian(y, 0, 3)
		})
	})

	It("absorbs at least 99% of an outgoing pulse", func() {
		s := newSolver(x, y)
		Expect(s.SetInitialCondition(hz0)).To(Succeed())
		dx := s.Grid().Dx()
		Expect(s.SetPML(10, 2.82, 1.5e-6, dx)).To(Succeed())

		initial := s.Peak()
		hz, err := s.RunUntil(101, fdtd.CourantStep(s.Grid(), 0.5))
		Expect(err).NotTo(HaveOccurred())

		ratio := hz.MaxAbs() / initial
		Expect(ratio * ratio).To(BeNumerically("<", 0.01))
		Expect(s.Warnings()).To(BeEmpty())
	})

	It("drains the field energy below 1% of its settled value", func() {
		s := newSolver(x, y)
		Expect(s.SetInitialCondition(hz0)).To(Succeed())
		Expect(s.SetPML(10, 2.82, 1.5e-6, s.Grid().Dx())).To(Succeed())
		trace := energyTrace(s)

		_, err := s.RunUntil(101, fdtd.CourantStep(s.Grid(), 0.5))
		Expect(err).NotTo(HaveOccurred())

		e := *trace
		Expect(e[len(e)-1] / e[10]).To(BeNumerically("<", 0.01))
	})

	It("keeps the energy with reflecting walls", func() {
		s := newSolver(x, y)
		Expect(s.SetInitialCondition(hz0)).To(Succeed())
		trace := energyTrace(s)

		_, err := s.RunUntil(101, fdtd.CourantStep(s.Grid(), 0.5))
		Expect(err).NotTo(HaveOccurred())

		e := *trace
		for k := 10; k < len(e); k++ {
			Expect(math.Abs(e[k]-e[10]) / e[10]).To(BeNumerically("<", 0.05), "step %d", k+1)
		}
	})
})

var _ = Describe("Chiral panel", func() {
	It("does not gain energy when the panel is lossless", func() {
		x := span(-5, 5, 61)
		y := span(-5, 5, 61)
		s := newSolver(x, y)
		Expect(s.SetInitialCondition(fill(x, y, func(x, y float64) float64 {
			return fdtd1d.Gaussian(x, -2, 0.5) * fdtd1d.Gaussian(y, 0, 0.5)
		}))).To(Succeed())
		Expect(s.SetChiralPanel(1, 0, 2, 6, 2, 0, 1.5)).To(Succeed())
		trace := energyTrace(s)

		_, err := s.RunUntil(20, fdtd.CourantStep(s.Grid(), 0.45))
		Expect(err).NotTo(HaveOccurred())

		e := *trace
		for k := 10; k < len(e); k++ {
			Expect(e[k] / e[10]).To(BeNumerically("<", 1.05), "step %d", k+1)
		}
		Expect(s.Warnings()).To(BeEmpty())
	})

	It("absorbs part of the pulse when the panel conducts", func() {
		x := span(-5, 5, 61)
		y := span(-5, 5, 61)
		hz0 := fill(x, y, func(x, y float64) float64 {
			return fdtd1d.Gaussian(x, -2, 0.5)
		})

		run := func(sigma float64) float64 {
			s := newSolver(x, y)
			Expect(s.SetInitialCondition(hz0)).To(Succeed())
			if sigma > 0 {
				Expect(s.SetChiralPanel(1, 0, 1, 10, 1, sigma, 0)).To(Succeed())
			}
			_, err := s.RunUntil(4, fdtd.CourantStep(s.Grid(), 0.45))
			Expect(err).NotTo(HaveOccurred())
			return s.Energy()
		}

		Expect(run(6)).To(BeNumerically("<", run(0)))
	})
})

var _ = Describe("Determinism", func() {
	build := func(workers int) *fdtd.Solver {
		x := span(-5, 5, 81)
		y := span(-4, 4, 65)
		s := newSolver(x, y, fdtd.WithWorkers(workers))
		Expect(s.SetInitialCondition(fill(x, y, func(x, y float64) float64 {
			return fdtd1d.Gaussian(x, 0.5, 0.4) * fdtd1d.Gaussian(y, -0.3, 0.6)
		}))).To(Succeed())
		Expect(s.SetUniform(1.2, 0.01)).To(Succeed())
		Expect(s.SetChiralPanel(2, 0, 1, 3, 2, 0.5, 0.8)).To(Succeed())
		Expect(s.SetPML(8, 3, 1e-6, s.Grid().Dx())).To(Succeed())
		return s
	}

	It("produces identical fields from identical configurations", func() {
		a, b := build(1), build(1)
		dt := fdtd.CourantStep(a.Grid(), 0.45)
		ha, err := a.RunUntil(6, dt)
		Expect(err).NotTo(HaveOccurred())
		hb, err := b.RunUntil(6, dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(ha.Equal(hb)).To(BeTrue())
		Expect(a.Ex().Equal(b.Ex())).To(BeTrue())
	})

	It("produces identical fields with parallel sweeps", func() {
		seq, par := build(1), build(4)
		dt := fdtd.CourantStep(seq.Grid(), 0.45)
		hs, err := seq.RunUntil(6, dt)
		Expect(err).NotTo(HaveOccurred())
		hp, err := par.RunUntil(6, dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(hp.Equal(hs)).To(BeTrue())
		Expect(par.Ey().Equal(seq.Ey())).To(BeTrue())
	})

	It("returns a copy that stepping does not change", func() {
		s := build(1)
		dt := fdtd.CourantStep(s.Grid(), 0.45)
		first, err := s.RunUntil(1, dt)
		Expect(err).NotTo(HaveOccurred())
		kept := first.Clone()
		_, err = s.RunUntil(2, dt)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Equal(kept)).To(BeTrue())
	})
})

var _ = Describe("Configuration and stepping errors", func() {
	var s *fdtd.Solver

	BeforeEach(func() {
		s = newSolver(span(0, 2, 21), span(0, 2, 21))
	})

	It("rejects configuration after the first step", func() {
		Expect(s.Step(0.01)).To(Succeed())

		var orderErr *fdtd.ConfigurationOrderError
		err := s.SetPML(3, 2, 1e-6, 0.1)
		Expect(errors.As(err, &orderErr)).To(BeTrue())
		Expect(orderErr.Operation).To(Equal("SetPML"))
		Expect(orderErr.Step).To(Equal(1))

		Expect(s.SetUniform(2, 0)).To(MatchError(fdtd.ErrConfigurationOrder))
		Expect(s.SetChiralPanel(1, 1, 0.5, 0.5, 2, 0, 1)).To(MatchError(fdtd.ErrConfigurationOrder))
		x := span(0, 2, 21)
		Expect(s.SetInitialCondition(fill(x, x, func(_, _ float64) float64 { return 1 }))).To(MatchError(fdtd.ErrConfigurationOrder))
	})

	It("unlocks configuration after Reset", func() {
		Expect(s.Step(0.01)).To(Succeed())
		s.Reset()
		Expect(s.Steps()).To(Equal(0))
		Expect(s.Time()).To(Equal(0.0))
		Expect(s.SetPML(3, 2, 1e-6, 0.1)).To(Succeed())
	})

	DescribeTable("invalid time steps",
		func(dt float64) {
			Expect(s.Step(dt)).To(MatchError(fdtd.ErrInvalidTimeStep))
			_, err := s.RunUntil(1, dt)
			Expect(err).To(MatchError(fdtd.ErrInvalidTimeStep))
			Expect(s.Steps()).To(Equal(0))
		},
		Entry("zero", 0.0),
		Entry("negative", -0.01),
		Entry("infinite", math.Inf(1)),
		Entry("not a number", math.NaN()),
	)

	It("rejects a negative duration", func() {
		_, err := s.RunUntil(-1, 0.01)
		Expect(err).To(MatchError(fdtd.ErrInvalidTimeStep))
	})

	It("rejects an initial condition of the wrong shape", func() {
		var shapeErr *fdtd.ShapeMismatchError
		err := s.SetInitialCondition(make([][]float64, 20))
		Expect(errors.As(err, &shapeErr)).To(BeTrue())
		Expect(shapeErr.WantNx).To(Equal(21))
		Expect(shapeErr.GotNx).To(Equal(20))
	})

	It("leaves the field at zero without an initial condition", func() {
		hz, err := s.RunUntil(1, 0.05)
		Expect(err).NotTo(HaveOccurred())
		Expect(hz.MaxAbs()).To(Equal(0.0))
		Expect(s.Steps()).To(Equal(20))
	})

	It("takes ceil(total/dt) steps without gaining one on exact multiples", func() {
		Expect(s.StepsUntil(0.3, 0.1)).To(Equal(3))
		Expect(s.StepsUntil(0.31, 0.1)).To(Equal(4))
		Expect(s.StepsUntil(0, 0.1)).To(Equal(0))
	})

	It("records an instability warning above the threshold and keeps stepping", func() {
		x := span(-1, 1, 21)
		u := newSolver(x, x, fdtd.WithInstabilityThreshold(10))
		Expect(u.SetInitialCondition(fill(x, x, func(x, y float64) float64 {
			return fdtd1d.Gaussian(x, 0, 0.2) * fdtd1d.Gaussian(y, 0, 0.2)
		}))).To(Succeed())

		dt := 3 * fdtd.CourantLimit(u.Grid())
		for k := 0; k < 200; k++ {
			Expect(u.Step(dt)).To(Succeed())
		}

		warnings := u.Warnings()
		Expect(warnings).To(HaveLen(1))
		Expect(warnings[0]).To(MatchError(fdtd.ErrUnstable))
		Expect(warnings[0].Threshold).To(Equal(10.0))
	})
})
