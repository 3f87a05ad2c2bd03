package fdtd

import "github.com/san-kum/fdtd2d/internal/units"

// LossCoefficients returns the semi-implicit update pair for a lossy
// medium: a = (1-σdt/2ε)/(1+σdt/2ε) and b = (dt/ε)/(1+σdt/2ε).
func LossCoefficients(eps, sigma, dt float64) (a, b float64) {
	loss := sigma * dt / (2 * eps)
	return (1 - loss) / (1 + loss), (dt / eps) / (1 + loss)
}

// engine holds the coefficient tables for one time step size. Tables are
// rebuilt when dt changes.
type engine struct {
	grid    *Grid
	fields  *Fields
	pml     *Profile
	workers int

	dt           float64
	invDx, invDy float64
	hB           float64

	hxA, hxB []float64
	hyA, hyB []float64

	exA, exB, exK []float64
	eyA, eyB, eyK []float64
}

func newEngine(g *Grid, f *Fields, workers int) *engine {
	return &engine{
		grid:    g,
		fields:  f,
		workers: workers,
		invDx:   1 / g.dx,
		invDy:   1 / g.dy,
	}
}

// prepare fills the coefficient tables from the medium and layer profile.
func (e *engine) prepare(m *Medium, pml *Profile, dt float64) {
	nx, ny := e.grid.Nx(), e.grid.Ny()
	e.dt = dt
	e.pml = pml
	e.hB = dt / units.Mu0

	e.exA = resize(e.exA, nx*(ny-1))
	e.exB = resize(e.exB, nx*(ny-1))
	e.exK = resize(e.exK, nx*(ny-1))
	for i := 0; i < nx; i++ {
		for j := 0; j < ny-1; j++ {
			eps, sigma, kappa := m.edgeX(i, j)
			if pml != nil {
				sigma += pml.YHalf[j] * eps
			}
			k := i*(ny-1) + j
			e.exA[k], e.exB[k] = LossCoefficients(eps*units.Eps0, sigma, dt)
			e.exK[k] = kappa
		}
	}

	e.eyA = resize(e.eyA, (nx-1)*ny)
	e.eyB = resize(e.eyB, (nx-1)*ny)
	e.eyK = resize(e.eyK, (nx-1)*ny)
	for i := 0; i < nx-1; i++ {
		for j := 0; j < ny; j++ {
			eps, sigma, kappa := m.edgeY(i, j)
			if pml != nil {
				sigma += pml.XHalf[i] * eps
			}
			k := i*ny + j
			e.eyA[k], e.eyB[k] = LossCoefficients(eps*units.Eps0, sigma, dt)
			e.eyK[k] = kappa
		}
	}

	if pml == nil {
		e.hxA, e.hxB, e.hyA, e.hyB = nil, nil, nil, nil
		return
	}
	e.hxA, e.hxB = layerCoefficients(pml.X, dt)
	e.hyA, e.hyB = layerCoefficients(pml.Y, dt)
}

func layerCoefficients(sigma []float64, dt float64) (a, b []float64) {
	a = make([]float64, len(sigma))
	b = make([]float64, len(sigma))
	for i, s := range sigma {
		a[i], b[i] = LossCoefficients(units.Mu0, s, dt)
	}
	return a, b
}

func resize(s []float64, n int) []float64 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float64, n)
}

// step advances H then E by one dt. The electric sweep starts only after
// every Hz row is final.
func (e *engine) step() {
	nx := e.grid.Nx()
	parallelFor(nx, e.workers, e.updateMagnetic)
	parallelFor(nx, e.workers, e.updateElectric)
}

// updateMagnetic advances Hz on x-rows [lo, hi). Electric values outside
// the domain are zero.
func (e *engine) updateMagnetic(lo, hi int) {
	nx, ny := e.grid.Nx(), e.grid.Ny()
	hz := e.fields.Hz.data
	ex, ey := e.fields.Ex.data, e.fields.Ey.data
	hzX, hzY := e.fields.hzX, e.fields.hzY
	nex := ny - 1

	for i := lo; i < hi; i++ {
		for j := 0; j < ny; j++ {
			var exP, exM, eyP, eyM float64
			var kexP, kexM, keyP, keyM float64
			if j < ny-1 {
				k := i*nex + j
				exP = ex[k]
				kexP = e.exK[k] * exP
			}
			if j > 0 {
				k := i*nex + j - 1
				exM = ex[k]
				kexM = e.exK[k] * exM
			}
			if i < nx-1 {
				k := i*ny + j
				eyP = ey[k]
				keyP = e.eyK[k] * eyP
			}
			if i > 0 {
				k := (i-1)*ny + j
				eyM = ey[k]
				keyM = e.eyK[k] * eyM
			}

			curlY := (exP-exM)*e.invDy + 0.5*(kexP+kexM)
			curlX := -(eyP-eyM)*e.invDx - 0.5*(keyP+keyM)

			k := i*ny + j
			if e.pml != nil && e.pml.InLayer(i, j) {
				hzX[k] = e.hxA[i]*hzX[k] + e.hxB[i]*curlX
				hzY[k] = e.hyA[j]*hzY[k] + e.hyB[j]*curlY
				hz[k] = hzX[k] + hzY[k]
				continue
			}
			hz[k] += e.hB * (curlX + curlY)
		}
	}
}

// updateElectric advances Ex and Ey on x-rows [lo, hi) from the completed Hz.
func (e *engine) updateElectric(lo, hi int) {
	nx, ny := e.grid.Nx(), e.grid.Ny()
	hz := e.fields.Hz.data
	ex, ey := e.fields.Ex.data, e.fields.Ey.data
	nex := ny - 1

	for i := lo; i < hi; i++ {
		for j := 0; j < nex; j++ {
			k := i*nex + j
			h1, h2 := hz[i*ny+j], hz[i*ny+j+1]
			ex[k] = e.exA[k]*ex[k] + e.exB[k]*((h2-h1)*e.invDy-e.exK[k]*0.5*(h1+h2))
		}
		if i >= nx-1 {
			continue
		}
		for j := 0; j < ny; j++ {
			k := i*ny + j
			h1, h2 := hz[k], hz[k+ny]
			ey[k] = e.eyA[k]*ey[k] + e.eyB[k]*(-(h2-h1)*e.invDx+e.eyK[k]*0.5*(h1+h2))
		}
	}
}
