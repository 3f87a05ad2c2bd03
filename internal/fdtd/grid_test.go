package fdtd

import (
	"errors"
	"math"
	"testing"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name    string
		x, y    []float64
		wantErr bool
		axis    string
	}{
		{"valid", []float64{0, 1, 2}, []float64{-1, 0}, false, ""},
		{"single x node", []float64{0}, []float64{0, 1}, true, "x"},
		{"empty y", []float64{0, 1}, nil, true, "y"},
		{"decreasing", []float64{0, 2, 1}, []float64{0, 1}, true, "x"},
		{"repeated", []float64{0, 1}, []float64{0, 0, 1}, true, "y"},
		{"non-uniform", []float64{0, 1, 3}, []float64{0, 1}, true, "x"},
		{"nan", []float64{0, math.NaN()}, []float64{0, 1}, true, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.x, tt.y)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if g.Nx() != len(tt.x) || g.Ny() != len(tt.y) {
					t.Errorf("shape %dx%d, want %dx%d", g.Nx(), g.Ny(), len(tt.x), len(tt.y))
				}
				return
			}
			if !errors.Is(err, ErrInvalidGrid) {
				t.Fatalf("expected ErrInvalidGrid, got %v", err)
			}
			var gridErr *InvalidGridError
			if !errors.As(err, &gridErr) || gridErr.Axis != tt.axis {
				t.Errorf("expected failure on %s axis, got %v", tt.axis, err)
			}
		})
	}
}

func TestGridSpacing(t *testing.T) {
	x := []float64{-5, -4.9, -4.8, -4.7}
	y := []float64{0, 0.5, 1}
	g, err := NewGrid(x, y)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(g.Dx()-0.1) > 1e-12 {
		t.Errorf("dx = %g, want 0.1", g.Dx())
	}
	if g.Dy() != 0.5 {
		t.Errorf("dy = %g, want 0.5", g.Dy())
	}

	x[0] = 100
	if g.X(0) != -5 {
		t.Error("grid aliases the caller's coordinates")
	}
}

func TestNearest(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 2, 3}, []float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		v    float64
		want int
	}{
		{-10, 0},
		{0.4, 0},
		{0.6, 1},
		{2.5, 2},
		{99, 3},
	}
	for _, tt := range tests {
		if got := g.NearestX(tt.v); got != tt.want {
			t.Errorf("NearestX(%g) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestCourant(t *testing.T) {
	g, err := NewGrid([]float64{0, 0.1, 0.2}, []float64{0, 0.1, 0.2})
	if err != nil {
		t.Fatal(err)
	}

	limit := CourantLimit(g)
	if step := CourantStep(g, 0.5); math.Abs(step-limit) > 1e-15 {
		t.Errorf("CourantStep(0.5) = %g, want the limit %g", step, limit)
	}
	if want := 0.1 / math.Sqrt2; math.Abs(limit-want) > 1e-15 {
		t.Errorf("CourantLimit = %g, want %g", limit, want)
	}

	if got := CoupledLimit(g, 0); math.Abs(got-limit) > 1e-15 {
		t.Errorf("CoupledLimit(0) = %g, want %g", got, limit)
	}
	coupled := CoupledLimit(g, 10)
	if !(coupled < limit) {
		t.Errorf("coupling should shrink the stable step: %g >= %g", coupled, limit)
	}
	if lhs := coupled * math.Sqrt(4/0.01+4/0.01+2*100); math.Abs(lhs-2) > 1e-12 {
		t.Errorf("dt·√(4/dx²+4/dy²+2κ²) = %g at the limit, want 2", lhs)
	}
}
