// Package analytic holds closed-form references for the solver: the
// normal-incidence response of a coupled lossy slab and the free-space
// split of a Gaussian pulse.
package analytic

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/fdtd2d/internal/fdtd1d"
	"github.com/san-kum/fdtd2d/internal/units"
)

// Slab is a homogeneous layer of thickness Width in vacuum, with the same
// material model the solver discretizes (k² = ω²με − iωμσ − 2κ²).
type Slab struct {
	Width float64
	Kappa float64
	Sigma float64
	EpsR  float64
	MuR   float64
}

func (s Slab) validate() error {
	if !(s.Width > 0) || !(s.EpsR > 0) || !(s.MuR > 0) || s.Sigma < 0 {
		return fmt.Errorf("analytic: invalid slab %+v", s)
	}
	return nil
}

// Coefficients returns the complex reflection and transmission amplitudes
// of the slab at angular frequency omega > 0, for a wave of unit amplitude.
func (s Slab) Coefficients(omega float64) (r, t complex128) {
	eps := complex(s.EpsR*units.Eps0, 0)
	mu := complex(s.MuR*units.Mu0, 0)
	w := complex(omega, 0)
	kap := complex(s.Kappa, 0)
	d := complex(s.Width, 0)

	adm := 1i*w*eps + complex(s.Sigma, 0)
	k := cmplx.Sqrt(-1i*w*mu*adm - 2*kap*kap)
	if imag(k) > 0 {
		k = -k
	}

	zp := -(1i*k + kap) / adm
	zm := (1i*k - kap) / adm
	ratio := (zp + 1) / (zm + 1)

	fwd := cmplx.Exp(1i * k * d)
	bwd := cmplx.Exp(-1i * k * d)
	a := 2 / ((1-zp)*fwd - (1-zm)*ratio*bwd)
	b := -a * ratio

	t = a + b
	r = a*fwd + b*bwd - 1
	return r, t
}

// TransmissionFromGaussianPulse weights |t(ω)|² by the power spectrum of a
// Gaussian pulse of the given width, sampled n times at spacing dt, and
// returns the amplitude ratio √(Σ|t|²|G|² / Σ|G|²).
func TransmissionFromGaussianPulse(s Slab, pulseWidth, dt float64, n int) (float64, error) {
	return spectrumWeighted(s, pulseWidth, dt, n, func(r, t complex128) float64 {
		a := cmplx.Abs(t)
		return a * a
	})
}

// ReflectionFromGaussianPulse is TransmissionFromGaussianPulse for r(ω).
func ReflectionFromGaussianPulse(s Slab, pulseWidth, dt float64, n int) (float64, error) {
	return spectrumWeighted(s, pulseWidth, dt, n, func(r, t complex128) float64 {
		a := cmplx.Abs(r)
		return a * a
	})
}

func spectrumWeighted(s Slab, pulseWidth, dt float64, n int, power func(r, t complex128) float64) (float64, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	if n < 4 || !(dt > 0) || !(pulseWidth > 0) {
		return 0, fmt.Errorf("analytic: need n >= 4, dt > 0 and width > 0, got n=%d dt=%g width=%g", n, dt, pulseWidth)
	}

	spectrum := fft.FFTReal(PulseSamples(pulseWidth, dt, n))

	var num, den float64
	for k := 1; k < n/2; k++ {
		g := cmplx.Abs(spectrum[k])
		p := g * g
		omega := 2 * math.Pi * float64(k) / (float64(n) * dt)
		r, t := s.Coefficients(omega)
		num += p * power(r, t)
		den += p
	}
	if den == 0 {
		return 0, fmt.Errorf("analytic: pulse spectrum is empty")
	}
	return math.Sqrt(num / den), nil
}

// PulseSamples is a Gaussian of the given width centred in n samples of dt.
func PulseSamples(width, dt float64, n int) []float64 {
	center := float64(n) * dt / 2
	out := make([]float64, n)
	for i := range out {
		out[i] = fdtd1d.Gaussian(float64(i)*dt, center, width)
	}
	return out
}

// TravelingWave is the vacuum solution for a Gaussian Hz released at rest:
// two half-amplitude copies moving apart at c0.
func TravelingWave(xs []float64, x0, width, t float64) []float64 {
	out := make([]float64, len(xs))
	shift := units.C0 * t
	for i, x := range xs {
		out[i] = 0.5*fdtd1d.Gaussian(x, x0-shift, width) + 0.5*fdtd1d.Gaussian(x, x0+shift, width)
	}
	return out
}
