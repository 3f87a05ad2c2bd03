package metrics

import (
	"math"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// Stability is the fraction of steps whose Hz stayed finite and below the
// threshold at every node.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(v fdtd.View, t float64) {
	s.samples++
	g := v.Grid()
	for i := 0; i < g.Nx(); i++ {
		for j := 0; j < g.Ny(); j++ {
			h := math.Abs(v.HzAt(i, j))
			if h > s.threshold || math.IsNaN(h) {
				s.violations++
				return
			}
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
