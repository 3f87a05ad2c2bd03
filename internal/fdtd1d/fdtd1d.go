// Package fdtd1d is a one-dimensional Yee solver for the (Hz, Ey) pair,
// the reduction of the two-dimensional scheme to fields that vary along x
// only. It also provides the Gaussian pulse shape shared by the scenarios.
package fdtd1d

import (
	"fmt"
	"math"

	"github.com/san-kum/fdtd2d/internal/fdtd"
	"github.com/san-kum/fdtd2d/internal/units"
)

// Gaussian is exp(-(x-center)²/(2·width²)).
func Gaussian(x, center, width float64) float64 {
	d := x - center
	return math.Exp(-d * d / (2 * width * width))
}

// GaussianSlice samples Gaussian at every coordinate.
func GaussianSlice(xs []float64, center, width float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Gaussian(x, center, width)
	}
	return out
}

// Solver integrates Hz on nodes and Ey on half nodes between PEC walls.
type Solver struct {
	x    []float64
	dx   float64
	hz   []float64
	ey   []float64
	time float64
}

// New validates the coordinates with the same rules as the 2D grid.
func New(x []float64) (*Solver, error) {
	g, err := fdtd.NewGrid(x, []float64{0, 1})
	if err != nil {
		return nil, err
	}
	return &Solver{
		x:  g.Xs(),
		dx: g.Dx(),
		hz: make([]float64, len(x)),
		ey: make([]float64, len(x)-1),
	}, nil
}

// SetInitialCondition loads Hz and clears Ey.
func (s *Solver) SetInitialCondition(hz []float64) error {
	if len(hz) != len(s.hz) {
		return &fdtd.ShapeMismatchError{WantNx: len(s.hz), WantNy: 1, GotNx: len(hz), GotNy: 1}
	}
	copy(s.hz, hz)
	clear(s.ey)
	s.time = 0
	return nil
}

func (s *Solver) Time() float64 { return s.time }

// RunUntil advances to total with the same step count and arithmetic as
// the 2D solver and returns a copy of Hz.
func (s *Solver) RunUntil(total, dt float64) ([]float64, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: dt must be positive and finite, got %g", fdtd.ErrInvalidTimeStep, dt)
	}
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return nil, fmt.Errorf("%w: total time must be non-negative and finite, got %g", fdtd.ErrInvalidTimeStep, total)
	}

	n := 0
	if remaining := total - s.time; remaining > 0 {
		n = int(math.Ceil(remaining/dt - 1e-9))
	}

	invDx := 1 / s.dx
	hB := dt / units.Mu0
	a, b := fdtd.LossCoefficients(units.Eps0, 0, dt)
	nx := len(s.hz)

	for k := 0; k < n; k++ {
		for i := 0; i < nx; i++ {
			var eyP, eyM float64
			if i < nx-1 {
				eyP = s.ey[i]
			}
			if i > 0 {
				eyM = s.ey[i-1]
			}
			s.hz[i] += hB * (-(eyP - eyM) * invDx)
		}
		for i := 0; i < nx-1; i++ {
			h1, h2 := s.hz[i], s.hz[i+1]
			s.ey[i] = a*s.ey[i] + b*(-(h2-h1)*invDx)
		}
		s.time += dt
	}

	out := make([]float64, nx)
	copy(out, s.hz)
	return out, nil
}
