package fdtd

import (
	"errors"
	"math"
	"testing"
)

func TestFieldFromRows(t *testing.T) {
	f, err := FieldFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if f.Nx != 2 || f.Ny != 3 {
		t.Fatalf("shape %dx%d, want 2x3", f.Nx, f.Ny)
	}
	if f.At(1, 2) != 6 {
		t.Errorf("At(1, 2) = %g, want 6", f.At(1, 2))
	}

	_, err = FieldFromRows([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("ragged rows: expected ErrShapeMismatch, got %v", err)
	}
}

func TestFieldSections(t *testing.T) {
	f := NewField2D(3, 2)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			f.Set(i, j, float64(10*i+j))
		}
	}

	alongX := f.AlongX(1)
	if want := []float64{1, 11, 21}; !equalSlices(alongX, want) {
		t.Errorf("AlongX(1) = %v, want %v", alongX, want)
	}
	alongY := f.AlongY(2)
	if want := []float64{20, 21}; !equalSlices(alongY, want) {
		t.Errorf("AlongY(2) = %v, want %v", alongY, want)
	}

	alongY[0] = -1
	if f.At(2, 0) != 20 {
		t.Error("AlongY aliases the field")
	}
}

func TestFieldCopies(t *testing.T) {
	f := NewField2D(2, 2)
	f.Set(0, 0, 1)

	c := f.Clone()
	c.Set(0, 0, 2)
	if f.At(0, 0) != 1 {
		t.Error("Clone shares storage")
	}

	rows := f.Rows()
	rows[0][0] = 3
	if f.At(0, 0) != 1 {
		t.Error("Rows shares storage")
	}

	if !f.Equal(f.Clone()) {
		t.Error("field differs from its clone")
	}
	if f.Equal(NewField2D(2, 3)) {
		t.Error("fields of different shape compare equal")
	}
}

func TestFieldNorms(t *testing.T) {
	f := NewField2D(2, 2)
	f.Set(0, 1, -3)
	f.Set(1, 0, 4)

	if f.MaxAbs() != 4 {
		t.Errorf("MaxAbs = %g, want 4", f.MaxAbs())
	}
	if f.Norm() != 5 {
		t.Errorf("Norm = %g, want 5", f.Norm())
	}
	if !f.IsValid() {
		t.Error("finite field reported invalid")
	}

	f.Set(1, 1, math.Inf(-1))
	if f.IsValid() {
		t.Error("infinite field reported valid")
	}
}

func TestFieldsInitialize(t *testing.T) {
	g, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	f := NewFields(g)

	if f.Ex.Nx != 3 || f.Ex.Ny != 3 {
		t.Errorf("Ex shape %dx%d, want 3x3", f.Ex.Nx, f.Ex.Ny)
	}
	if f.Ey.Nx != 2 || f.Ey.Ny != 4 {
		t.Errorf("Ey shape %dx%d, want 2x4", f.Ey.Nx, f.Ey.Ny)
	}

	hz := NewField2D(3, 4)
	hz.Set(1, 2, 2)
	f.Ex.Set(0, 0, 7)
	if err := f.Initialize(hz); err != nil {
		t.Fatal(err)
	}
	if f.ExAt(0, 0) != 0 {
		t.Error("Initialize kept the electric field")
	}
	if k := 1*4 + 2; f.hzX[k] != 1 || f.hzY[k] != 1 {
		t.Errorf("split fields %g + %g, want 1 + 1", f.hzX[k], f.hzY[k])
	}
	if want := 0.5 * 4; f.Energy() != want {
		t.Errorf("Energy = %g, want %g", f.Energy(), want)
	}

	if err := f.Initialize(NewField2D(4, 3)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func equalSlices(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
