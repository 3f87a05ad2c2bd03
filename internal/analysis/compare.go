package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Correlation is the Pearson correlation of two equal-length profiles.
func Correlation(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("analysis: length mismatch %d vs %d", len(a), len(b))
	}
	if len(a) < 2 {
		return 0, fmt.Errorf("analysis: need at least 2 samples, got %d", len(a))
	}
	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) {
		return 0, fmt.Errorf("analysis: correlation undefined for constant input")
	}
	return r, nil
}

// RMSError is the root-mean-square difference of two profiles.
func RMSError(a, b []float64) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, fmt.Errorf("analysis: length mismatch %d vs %d", len(a), len(b))
	}
	return floats.Distance(a, b, 2) / math.Sqrt(float64(len(a))), nil
}

// PeakPositions returns the coordinate of the largest value left of split
// and the one at or right of it.
func PeakPositions(xs, values []float64, split float64) (left, right float64, err error) {
	if len(xs) != len(values) || len(xs) == 0 {
		return 0, 0, fmt.Errorf("analysis: length mismatch %d vs %d", len(xs), len(values))
	}
	k := 0
	for k < len(xs) && xs[k] < split {
		k++
	}
	if k == 0 || k == len(xs) {
		return 0, 0, fmt.Errorf("analysis: split %g leaves one side empty", split)
	}
	left = xs[floats.MaxIdx(values[:k])]
	right = xs[k+floats.MaxIdx(values[k:])]
	return left, right, nil
}
