package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum returns the one-sided spectrum |X_k|² for k in [0, n/2)
// and the matching frequencies k/(n·dt).
func PowerSpectrum(data []float64, dt float64) (freqs, power []float64, err error) {
	n := len(data)
	if n < 2 {
		return nil, nil, fmt.Errorf("analysis: need at least 2 samples, got %d", n)
	}
	if !(dt > 0) {
		return nil, nil, fmt.Errorf("analysis: sample spacing must be positive, got %g", dt)
	}

	spectrum := fft.FFTReal(data)
	freqs = make([]float64, n/2)
	power = make([]float64, n/2)
	for k := range power {
		a := cmplx.Abs(spectrum[k])
		power[k] = a * a
		freqs[k] = float64(k) / (float64(n) * dt)
	}
	return freqs, power, nil
}

// DominantFrequency is the frequency of the largest non-DC bin.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	freqs, power, err := PowerSpectrum(data, dt)
	if err != nil {
		return 0, err
	}
	if len(power) < 2 {
		return 0, fmt.Errorf("analysis: series too short for a non-DC bin")
	}
	return freqs[1+floats.MaxIdx(power[1:])], nil
}
