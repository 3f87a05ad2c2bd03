package probe

import (
	"fmt"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// Point records Hz at one node after every step.
type Point struct {
	I, J    int
	samples []Sample
}

func NewPoint(g *fdtd.Grid, i, j int) (*Point, error) {
	if i < 0 || i >= g.Nx() || j < 0 || j >= g.Ny() {
		return nil, fmt.Errorf("probe: node (%d, %d) outside %dx%d grid", i, j, g.Nx(), g.Ny())
	}
	return &Point{I: i, J: j}, nil
}

// NewPointAt picks the node nearest to (x, y).
func NewPointAt(g *fdtd.Grid, x, y float64) *Point {
	return &Point{I: g.NearestX(x), J: g.NearestY(y)}
}

func (p *Point) OnStep(v fdtd.View, t, dt float64) {
	p.samples = append(p.samples, Sample{Time: t, Value: v.HzAt(p.I, p.J)})
}

func (p *Point) Series() []Sample { return append([]Sample(nil), p.samples...) }

// Values returns just the recorded Hz values.
func (p *Point) Values() []float64 {
	out := make([]float64, len(p.samples))
	for k, s := range p.samples {
		out[k] = s.Value
	}
	return out
}

func (p *Point) Reset() { p.samples = p.samples[:0] }
