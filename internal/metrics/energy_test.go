package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

type stubView struct {
	grid   *fdtd.Grid
	hz     float64
	energy float64
}

func (s stubView) Grid() *fdtd.Grid      { return s.grid }
func (s stubView) HzAt(i, j int) float64 { return s.hz }
func (s stubView) ExAt(i, j int) float64 { return 0 }
func (s stubView) EyAt(i, j int) float64 { return 0 }
func (s stubView) Energy() float64       { return s.energy }

func newStubGrid(t *testing.T) *fdtd.Grid {
	t.Helper()
	g, err := fdtd.NewGrid([]float64{0, 1, 2}, []float64{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestEnergyTracksSamples(t *testing.T) {
	g := newStubGrid(t)
	m := NewEnergy()

	m.Observe(stubView{grid: g, energy: 4}, 0)
	m.Observe(stubView{grid: g, energy: 1}, 1)
	m.Observe(stubView{grid: g, energy: 2}, 2)

	if m.Initial() != 4 {
		t.Errorf("expected initial energy 4, got %f", m.Initial())
	}
	if m.Value() != 2 {
		t.Errorf("expected current energy 2, got %f", m.Value())
	}
	if m.Min() != 1 {
		t.Errorf("expected min energy 1, got %f", m.Min())
	}
	if math.Abs(m.Remaining()-0.5) > 1e-12 {
		t.Errorf("expected remaining 0.5, got %f", m.Remaining())
	}
}

func TestEnergyReset(t *testing.T) {
	g := newStubGrid(t)
	m := NewEnergy()

	m.Observe(stubView{grid: g, energy: 1}, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	g := newStubGrid(t)
	m := NewEnergyDrift()

	for _, w := range []float64{10, 10.5, 9.8, 10.1} {
		m.Observe(stubView{grid: g, energy: w}, 0)
	}
	if math.Abs(m.Value()-0.05) > 1e-12 {
		t.Errorf("expected drift 0.05, got %f", m.Value())
	}

	m.Reset()
	m.Observe(stubView{grid: g, energy: 4}, 0)
	m.Observe(stubView{grid: g, energy: 5}, 1)
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("expected drift 0.25 after reset, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	g := newStubGrid(t)
	m := NewStability(10)

	m.Observe(stubView{grid: g, hz: 1}, 0)
	m.Observe(stubView{grid: g, hz: 100}, 1)
	m.Observe(stubView{grid: g, hz: math.NaN()}, 2)
	m.Observe(stubView{grid: g, hz: 2}, 3)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected stability 1 after reset, got %f", m.Value())
	}
}
