package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SweepPoint is one evaluation of a parameter sweep.
type SweepPoint struct {
	Param float64
	Value float64
}

// Sweep evaluates fn at steps evenly spaced parameter values in
// [lo, hi], stopping at the first error.
func Sweep(lo, hi float64, steps int, fn func(param float64) (float64, error)) ([]SweepPoint, error) {
	if steps < 2 {
		steps = 2
	}
	params := floats.Span(make([]float64, steps), lo, hi)

	results := make([]SweepPoint, 0, steps)
	for _, p := range params {
		v, err := fn(p)
		if err != nil {
			return results, fmt.Errorf("analysis: sweep at %g: %w", p, err)
		}
		results = append(results, SweepPoint{Param: p, Value: v})
	}
	return results, nil
}
