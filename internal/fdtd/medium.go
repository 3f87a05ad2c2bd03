package fdtd

import (
	"fmt"
	"math"
)

// Panel is an axis-aligned chiral slab. Widths are full widths.
type Panel struct {
	CenterX float64 `yaml:"center_x" json:"center_x"`
	CenterY float64 `yaml:"center_y" json:"center_y"`
	WidthX  float64 `yaml:"width_x" json:"width_x"`
	WidthY  float64 `yaml:"width_y" json:"width_y"`
	EpsR    float64 `yaml:"eps_r" json:"eps_r"`
	Sigma   float64 `yaml:"sigma" json:"sigma"`
	Kappa   float64 `yaml:"kappa" json:"kappa"`
}

// Contains reports whether the point lies inside the closed rectangle.
func (p Panel) Contains(x, y float64) bool {
	return math.Abs(x-p.CenterX) <= p.WidthX/2 && math.Abs(y-p.CenterY) <= p.WidthY/2
}

func (p Panel) validate() error {
	for _, v := range []float64{p.CenterX, p.CenterY, p.WidthX, p.WidthY, p.EpsR, p.Sigma, p.Kappa} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite panel parameter", ErrInvalidMedium)
		}
	}
	if p.WidthX <= 0 || p.WidthY <= 0 {
		return fmt.Errorf("%w: panel widths must be positive, got %g x %g", ErrInvalidMedium, p.WidthX, p.WidthY)
	}
	return checkMaterial(p.EpsR, p.Sigma)
}

func checkMaterial(epsR, sigma float64) error {
	if math.IsNaN(epsR) || math.IsInf(epsR, 0) || epsR <= 0 {
		return fmt.Errorf("%w: relative permittivity must be positive, got %g", ErrInvalidMedium, epsR)
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma < 0 {
		return fmt.Errorf("%w: conductivity must be non-negative, got %g", ErrInvalidMedium, sigma)
	}
	return nil
}

// Medium holds per-cell material values on the Hz nodes. Edge values used
// by the electric update are the mean of the two cells an edge separates.
type Medium struct {
	nx, ny int
	x, y   []float64
	epsR   []float64
	sigma  []float64
	kappa  []float64
	panel  *Panel
}

// NewMedium returns a vacuum medium sized to g.
func NewMedium(g *Grid) *Medium {
	n := g.Nx() * g.Ny()
	m := &Medium{
		nx:    g.Nx(),
		ny:    g.Ny(),
		x:     g.x,
		y:     g.y,
		epsR:  make([]float64, n),
		sigma: make([]float64, n),
		kappa: make([]float64, n),
	}
	for k := range m.epsR {
		m.epsR[k] = 1
	}
	return m
}

// SetUniform assigns background values to every cell and clears any panel.
func (m *Medium) SetUniform(epsR, sigma float64) error {
	if err := checkMaterial(epsR, sigma); err != nil {
		return err
	}
	for k := range m.epsR {
		m.epsR[k] = epsR
		m.sigma[k] = sigma
		m.kappa[k] = 0
	}
	m.panel = nil
	return nil
}

// SetChiralPanel overwrites the cells inside p. Cells outside keep their
// values, so a second call only replaces what it covers.
func (m *Medium) SetChiralPanel(p Panel) (int, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	covered := 0
	for i := 0; i < m.nx; i++ {
		for j := 0; j < m.ny; j++ {
			if !p.Contains(m.x[i], m.y[j]) {
				continue
			}
			k := i*m.ny + j
			m.epsR[k] = p.EpsR
			m.sigma[k] = p.Sigma
			m.kappa[k] = p.Kappa
			covered++
		}
	}
	m.panel = &p
	return covered, nil
}

// At returns the cell values at node (i, j).
func (m *Medium) At(i, j int) (epsR, sigma, kappa float64) {
	k := i*m.ny + j
	return m.epsR[k], m.sigma[k], m.kappa[k]
}

// Panel returns the most recently applied panel.
func (m *Medium) Panel() (Panel, bool) {
	if m.panel == nil {
		return Panel{}, false
	}
	return *m.panel, true
}

// edgeX averages the cells on either side of Ex(i, j).
func (m *Medium) edgeX(i, j int) (epsR, sigma, kappa float64) {
	a, b := i*m.ny+j, i*m.ny+j+1
	return 0.5 * (m.epsR[a] + m.epsR[b]), 0.5 * (m.sigma[a] + m.sigma[b]), 0.5 * (m.kappa[a] + m.kappa[b])
}

// edgeY averages the cells on either side of Ey(i, j).
func (m *Medium) edgeY(i, j int) (epsR, sigma, kappa float64) {
	a, b := i*m.ny+j, (i+1)*m.ny+j
	return 0.5 * (m.epsR[a] + m.epsR[b]), 0.5 * (m.sigma[a] + m.sigma[b]), 0.5 * (m.kappa[a] + m.kappa[b])
}
