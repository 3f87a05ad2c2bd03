package fdtd

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/fdtd2d/internal/units"
)

// uniformTolerance bounds the relative deviation of any spacing from the mean.
const uniformTolerance = 1e-6

// Grid is a rectangular, uniformly spaced node lattice.
type Grid struct {
	x, y   []float64
	dx, dy float64
}

// NewGrid validates and copies the axis coordinates.
func NewGrid(x, y []float64) (*Grid, error) {
	dx, err := axisSpacing("x", x)
	if err != nil {
		return nil, err
	}
	dy, err := axisSpacing("y", y)
	if err != nil {
		return nil, err
	}
	g := &Grid{
		x:  append([]float64(nil), x...),
		y:  append([]float64(nil), y...),
		dx: dx,
		dy: dy,
	}
	return g, nil
}

func axisSpacing(axis string, c []float64) (float64, error) {
	if len(c) < 2 {
		return 0, &InvalidGridError{Axis: axis, Reason: fmt.Sprintf("need at least 2 nodes, got %d", len(c))}
	}
	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &InvalidGridError{Axis: axis, Reason: fmt.Sprintf("coordinate %d is not finite", i)}
		}
		if i > 0 && v <= c[i-1] {
			return 0, &InvalidGridError{Axis: axis, Reason: fmt.Sprintf("coordinates not strictly increasing at %d", i)}
		}
	}
	d := (c[len(c)-1] - c[0]) / float64(len(c)-1)
	for i := 1; i < len(c); i++ {
		if math.Abs(c[i]-c[i-1]-d) > uniformTolerance*d {
			return 0, &InvalidGridError{Axis: axis, Reason: fmt.Sprintf("non-uniform spacing at %d", i)}
		}
	}
	return d, nil
}

func (g *Grid) Nx() int           { return len(g.x) }
func (g *Grid) Ny() int           { return len(g.y) }
func (g *Grid) Dx() float64       { return g.dx }
func (g *Grid) Dy() float64       { return g.dy }
func (g *Grid) X(i int) float64   { return g.x[i] }
func (g *Grid) Y(j int) float64   { return g.y[j] }
func (g *Grid) Xs() []float64     { return append([]float64(nil), g.x...) }
func (g *Grid) Ys() []float64     { return append([]float64(nil), g.y...) }
func (g *Grid) Width() float64    { return g.x[len(g.x)-1] - g.x[0] }
func (g *Grid) Height() float64   { return g.y[len(g.y)-1] - g.y[0] }
func (g *Grid) Shape() (int, int) { return len(g.x), len(g.y) }

// NearestX returns the node index closest to v, clamped to the grid.
func (g *Grid) NearestX(v float64) int { return nearest(g.x, v) }

// NearestY returns the node index closest to v, clamped to the grid.
func (g *Grid) NearestY(v float64) int { return nearest(g.y, v) }

func nearest(c []float64, v float64) int {
	k := sort.SearchFloat64s(c, v)
	if k <= 0 {
		return 0
	}
	if k >= len(c) {
		return len(c) - 1
	}
	if v-c[k-1] <= c[k]-v {
		return k - 1
	}
	return k
}

// CourantLimit is the largest stable explicit step for the grid in vacuum.
func CourantLimit(g *Grid) float64 {
	return 1 / (units.C0 * math.Sqrt(1/(g.dx*g.dx)+1/(g.dy*g.dy)))
}

// CoupledLimit is the largest stable dt with a chiral coupling kappa,
// from dt·√(4/dx²+4/dy²+2κ²) ≤ 2. It equals CourantLimit at kappa = 0.
func CoupledLimit(g *Grid, kappa float64) float64 {
	c := units.C0
	return 2 / math.Sqrt(4*c*c/(g.dx*g.dx)+4*c*c/(g.dy*g.dy)+2*kappa*kappa)
}

// CourantStep returns factor·sqrt(dx²+dy²)/c0. With equal spacings a factor
// of 0.5 lands exactly on CourantLimit.
func CourantStep(g *Grid, factor float64) float64 {
	return factor * math.Hypot(g.dx, g.dy) / units.C0
}
