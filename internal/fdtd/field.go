package fdtd

import "math"

// Field2D is a dense nx×ny array indexed [i][j] with i along x.
type Field2D struct {
	Nx, Ny int
	data   []float64
}

func NewField2D(nx, ny int) Field2D {
	return Field2D{Nx: nx, Ny: ny, data: make([]float64, nx*ny)}
}

// FieldFromRows copies a [i][j] slice-of-slices. Ragged input is a shape error.
func FieldFromRows(rows [][]float64) (Field2D, error) {
	nx := len(rows)
	ny := 0
	if nx > 0 {
		ny = len(rows[0])
	}
	f := NewField2D(nx, ny)
	for i, row := range rows {
		if len(row) != ny {
			return Field2D{}, &ShapeMismatchError{WantNx: nx, WantNy: ny, GotNx: nx, GotNy: len(row)}
		}
		copy(f.data[i*ny:(i+1)*ny], row)
	}
	return f, nil
}

func (f Field2D) At(i, j int) float64     { return f.data[i*f.Ny+j] }
func (f Field2D) Set(i, j int, v float64) { f.data[i*f.Ny+j] = v }

func (f Field2D) Clone() Field2D {
	c := Field2D{Nx: f.Nx, Ny: f.Ny, data: make([]float64, len(f.data))}
	copy(c.data, f.data)
	return c
}

// Values returns a copy of the backing array in [i*Ny+j] order.
func (f Field2D) Values() []float64 {
	out := make([]float64, len(f.data))
	copy(out, f.data)
	return out
}

// Rows returns a copy as a slice of x-rows.
func (f Field2D) Rows() [][]float64 {
	rows := make([][]float64, f.Nx)
	for i := range rows {
		rows[i] = make([]float64, f.Ny)
		copy(rows[i], f.data[i*f.Ny:(i+1)*f.Ny])
	}
	return rows
}

// AlongY returns the values at fixed x index i.
func (f Field2D) AlongY(i int) []float64 {
	out := make([]float64, f.Ny)
	copy(out, f.data[i*f.Ny:(i+1)*f.Ny])
	return out
}

// AlongX returns the values at fixed y index j.
func (f Field2D) AlongX(j int) []float64 {
	out := make([]float64, f.Nx)
	for i := range out {
		out[i] = f.data[i*f.Ny+j]
	}
	return out
}

func (f Field2D) MaxAbs() float64 {
	m := 0.0
	for _, v := range f.data {
		if a := math.Abs(v); a > m || math.IsNaN(a) {
			m = a
		}
	}
	return m
}

func (f Field2D) IsValid() bool {
	for _, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (f Field2D) Norm() float64 {
	sum := 0.0
	for _, v := range f.data {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (f Field2D) Equal(other Field2D) bool {
	if f.Nx != other.Nx || f.Ny != other.Ny {
		return false
	}
	for k, v := range f.data {
		if v != other.data[k] {
			return false
		}
	}
	return true
}
