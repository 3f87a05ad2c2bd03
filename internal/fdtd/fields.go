package fdtd

import "math"

// Fields is the staggered field state. Ex is nx×(ny-1), Ey is (nx-1)×ny.
// hzX and hzY hold the split magnetic field and are meaningful only in
// absorbing-layer cells, where Hz = hzX + hzY.
type Fields struct {
	grid *Grid
	Hz   Field2D
	Ex   Field2D
	Ey   Field2D
	hzX  []float64
	hzY  []float64
}

// NewFields returns zeroed fields for g.
func NewFields(g *Grid) *Fields {
	nx, ny := g.Nx(), g.Ny()
	return &Fields{
		grid: g,
		Hz:   NewField2D(nx, ny),
		Ex:   NewField2D(nx, ny-1),
		Ey:   NewField2D(nx-1, ny),
		hzX:  make([]float64, nx*ny),
		hzY:  make([]float64, nx*ny),
	}
}

// Initialize copies hz into Hz, clears the electric field and seeds each
// split component with half of Hz.
func (f *Fields) Initialize(hz Field2D) error {
	if hz.Nx != f.Hz.Nx || hz.Ny != f.Hz.Ny {
		return &ShapeMismatchError{WantNx: f.Hz.Nx, WantNy: f.Hz.Ny, GotNx: hz.Nx, GotNy: hz.Ny}
	}
	copy(f.Hz.data, hz.data)
	for k, v := range hz.data {
		f.hzX[k] = v / 2
		f.hzY[k] = v / 2
	}
	clear(f.Ex.data)
	clear(f.Ey.data)
	return nil
}

func (f *Fields) Grid() *Grid           { return f.grid }
func (f *Fields) HzAt(i, j int) float64 { return f.Hz.data[i*f.Hz.Ny+j] }
func (f *Fields) ExAt(i, j int) float64 { return f.Ex.data[i*f.Ex.Ny+j] }
func (f *Fields) EyAt(i, j int) float64 { return f.Ey.data[i*f.Ey.Ny+j] }
func (f *Fields) Snapshot() Field2D     { return f.Hz.Clone() }

// Energy is ½∫(Hz² + Ex² + Ey²) dA in vacuum weighting.
func (f *Fields) Energy() float64 {
	w := sumSquares(f.Hz.data) + sumSquares(f.Ex.data) + sumSquares(f.Ey.data)
	return 0.5 * w * f.grid.dx * f.grid.dy
}

// Peak is the largest |Hz|, NaN if any sample is NaN.
func (f *Fields) Peak() float64 {
	return f.Hz.MaxAbs()
}

// Valid reports whether every field sample is finite.
func (f *Fields) Valid() bool {
	return f.Hz.IsValid() && f.Ex.IsValid() && f.Ey.IsValid()
}

func sumSquares(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
