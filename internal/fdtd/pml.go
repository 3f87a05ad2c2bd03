package fdtd

import (
	"fmt"
	"math"

	"github.com/san-kum/fdtd2d/internal/units"
)

// PML describes a graded absorbing layer along all four edges.
type PML struct {
	Thickness  int     `yaml:"thickness" json:"thickness"`
	Order      float64 `yaml:"order" json:"order"`
	Reflection float64 `yaml:"reflection" json:"reflection"`
	CellSize   float64 `yaml:"cell_size" json:"cell_size"`
}

// Validate checks the parameters against a grid. Opposite layers must not meet.
func (p PML) Validate(g *Grid) error {
	if p.Thickness < 1 {
		return fmt.Errorf("%w: thickness must be at least one cell, got %d", ErrInvalidPML, p.Thickness)
	}
	if 2*p.Thickness >= g.Nx() || 2*p.Thickness >= g.Ny() {
		return fmt.Errorf("%w: %d-cell layers overlap on a %dx%d grid", ErrInvalidPML, p.Thickness, g.Nx(), g.Ny())
	}
	if math.IsNaN(p.Order) || p.Order < 0 {
		return fmt.Errorf("%w: grading order must be non-negative, got %g", ErrInvalidPML, p.Order)
	}
	if !(p.Reflection > 0 && p.Reflection < 1) {
		return fmt.Errorf("%w: target reflection must be in (0, 1), got %g", ErrInvalidPML, p.Reflection)
	}
	if !(p.CellSize > 0) || math.IsInf(p.CellSize, 0) {
		return fmt.Errorf("%w: cell size must be positive, got %g", ErrInvalidPML, p.CellSize)
	}
	return nil
}

// SigmaMax is the conductivity at the outer edge of the layer.
func (p PML) SigmaMax() float64 {
	return -(p.Order + 1) * math.Log(p.Reflection) / (2 * units.Eta0 * float64(p.Thickness) * p.CellSize)
}

// Sigma grades the conductivity by depth d (in cells) into the layer.
func (p PML) Sigma(d float64) float64 {
	if d <= 0 {
		return 0
	}
	n := float64(p.Thickness)
	if d > n {
		d = n
	}
	return p.SigmaMax() * math.Pow(d/n, p.Order)
}

// Profile holds the graded conductivity per axis. X and Y are sampled on
// the nodes, XHalf and YHalf on the staggered half-cell positions.
type Profile struct {
	PML      PML
	SigmaMax float64
	X, Y     []float64
	XHalf    []float64
	YHalf    []float64
}

// BuildProfile samples p on the grid.
func BuildProfile(g *Grid, p PML) (*Profile, error) {
	if err := p.Validate(g); err != nil {
		return nil, err
	}
	pr := &Profile{
		PML:      p,
		SigmaMax: p.SigmaMax(),
		X:        sampleLayer(p, g.Nx(), 0),
		Y:        sampleLayer(p, g.Ny(), 0),
		XHalf:    sampleLayer(p, g.Nx()-1, 0.5),
		YHalf:    sampleLayer(p, g.Ny()-1, 0.5),
	}
	return pr, nil
}

// sampleLayer evaluates count positions i+offset on an axis of nodes nodes.
func sampleLayer(p PML, count int, offset float64) []float64 {
	nodes := count
	if offset != 0 {
		nodes = count + 1
	}
	out := make([]float64, count)
	for i := range out {
		out[i] = p.Sigma(layerDepth(float64(i)+offset, nodes, p.Thickness))
	}
	return out
}

// layerDepth is the distance in cells from the interior edge of the nearer
// layer; non-positive outside both layers.
func layerDepth(pos float64, nodes, thickness int) float64 {
	left := float64(thickness) - pos
	right := pos - float64(nodes-1-thickness)
	return math.Max(left, right)
}

// InLayer reports whether node (i, j) lies in any absorbing layer.
func (pr *Profile) InLayer(i, j int) bool {
	return pr.X[i] > 0 || pr.Y[j] > 0
}
