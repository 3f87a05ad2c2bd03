// Package probe extracts cross-sections, point series and Poynting flux
// from a running solver.
package probe

import (
	"fmt"
	"math"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// Axis names the direction a line runs along.
type Axis int

const (
	// AlongX is the line of fixed y index.
	AlongX Axis = iota
	// AlongY is the line of fixed x index.
	AlongY
)

func (a Axis) String() string {
	switch a {
	case AlongX:
		return "x"
	case AlongY:
		return "y"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis accepts "x" or "y".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AlongX, nil
	case "y", "Y":
		return AlongY, nil
	}
	return 0, fmt.Errorf("probe: unknown axis %q", s)
}

// Slice returns the 1D cross-section of f along axis at the given index of
// the other axis.
func Slice(f fdtd.Field2D, axis Axis, index int) ([]float64, error) {
	switch axis {
	case AlongX:
		if index < 0 || index >= f.Ny {
			return nil, fmt.Errorf("probe: y index %d out of range [0, %d)", index, f.Ny)
		}
		return f.AlongX(index), nil
	case AlongY:
		if index < 0 || index >= f.Nx {
			return nil, fmt.Errorf("probe: x index %d out of range [0, %d)", index, f.Nx)
		}
		return f.AlongY(index), nil
	}
	return nil, fmt.Errorf("probe: unknown axis %v", axis)
}

// Transmission is the amplitude ratio √|with/without| of two flux totals.
func Transmission(with, without float64) (float64, error) {
	if without == 0 || math.IsNaN(without) {
		return 0, fmt.Errorf("probe: reference flux is zero")
	}
	return math.Sqrt(math.Abs(with / without)), nil
}
