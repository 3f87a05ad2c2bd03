package probe

import (
	"fmt"
	"math"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// Flux integrates the Poynting flux through a grid line over time.
//
// With Normal == AlongY the line is the Ex row at y_{Index+½} and the
// accumulated quantity is ∫∫ -Ex·Hz dx dt (positive towards +y). With
// Normal == AlongX it is the Ey column at x_{Index+½} and ∫∫ Ey·Hz dy dt.
// Hz is averaged onto the edge from its two neighbouring nodes.
type Flux struct {
	Normal Axis
	Index  int

	total   float64
	samples []Sample
	keep    bool
}

// Sample is one step of a flux or point record.
type Sample struct {
	Time  float64
	Value float64
}

// NewFlux checks that index addresses an edge line of g.
func NewFlux(g *fdtd.Grid, normal Axis, index int, record bool) (*Flux, error) {
	limit := g.Ny() - 1
	if normal == AlongX {
		limit = g.Nx() - 1
	}
	if index < 0 || index >= limit {
		return nil, fmt.Errorf("probe: flux line %d out of range [0, %d)", index, limit)
	}
	return &Flux{Normal: normal, Index: index, keep: record}, nil
}

// NewFluxAt picks the edge line nearest to pos along the normal axis.
func NewFluxAt(g *fdtd.Grid, normal Axis, pos float64, record bool) (*Flux, error) {
	origin, step := g.Y(0), g.Dy()
	if normal == AlongX {
		origin, step = g.X(0), g.Dx()
	}
	index := int(math.Round((pos-origin)/step - 0.5))
	return NewFlux(g, normal, index, record)
}

// OnStep implements fdtd.Observer.
func (f *Flux) OnStep(v fdtd.View, t, dt float64) {
	rate := f.Rate(v)
	f.total += rate * dt
	if f.keep {
		f.samples = append(f.samples, Sample{Time: t, Value: f.total})
	}
}

// Rate is the instantaneous flux through the line.
func (f *Flux) Rate(v fdtd.View) float64 {
	g := v.Grid()
	sum := 0.0
	if f.Normal == AlongY {
		j := f.Index
		for i := 0; i < g.Nx(); i++ {
			h := 0.5 * (v.HzAt(i, j) + v.HzAt(i, j+1))
			sum += -v.ExAt(i, j) * h * g.Dx()
		}
		return sum
	}
	i := f.Index
	for j := 0; j < g.Ny(); j++ {
		h := 0.5 * (v.HzAt(i, j) + v.HzAt(i+1, j))
		sum += v.EyAt(i, j) * h * g.Dy()
	}
	return sum
}

// Total is the accumulated flux so far.
func (f *Flux) Total() float64 { return f.total }

// Series returns the cumulative flux after each step when recording.
func (f *Flux) Series() []Sample { return append([]Sample(nil), f.samples...) }

func (f *Flux) Reset() {
	f.total = 0
	f.samples = f.samples[:0]
}
