package fdtd

import (
	"errors"
	"fmt"
)

// Domain errors for solver configuration and stepping.
var (
	// ErrInvalidGrid indicates too few or non-increasing/non-uniform coordinates.
	ErrInvalidGrid = errors.New("fdtd: invalid grid")

	// ErrShapeMismatch indicates an array whose shape differs from the grid.
	ErrShapeMismatch = errors.New("fdtd: array shape does not match grid")

	// ErrInvalidTimeStep indicates a non-positive or non-finite time step or duration.
	ErrInvalidTimeStep = errors.New("fdtd: invalid time step")

	// ErrInvalidPML indicates absorbing-layer parameters outside their valid range.
	ErrInvalidPML = errors.New("fdtd: invalid PML parameters")

	// ErrInvalidMedium indicates non-physical material parameters.
	ErrInvalidMedium = errors.New("fdtd: invalid medium parameters")

	// ErrConfigurationOrder indicates configuration attempted after stepping started.
	ErrConfigurationOrder = errors.New("fdtd: configuration after stepping started")

	// ErrUnstable indicates the field magnitude crossed the stability threshold.
	ErrUnstable = errors.New("fdtd: field magnitude exceeded stability threshold")
)

// InvalidGridError describes which axis failed validation.
type InvalidGridError struct {
	Axis   string
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("fdtd: invalid grid: %s axis: %s", e.Axis, e.Reason)
}

func (e *InvalidGridError) Unwrap() error { return ErrInvalidGrid }

// ShapeMismatchError reports the expected and received array shapes.
type ShapeMismatchError struct {
	WantNx, WantNy int
	GotNx, GotNy   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("fdtd: shape mismatch: want %dx%d, got %dx%d", e.WantNx, e.WantNy, e.GotNx, e.GotNy)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// ConfigurationOrderError is returned when a configuration call arrives
// after the first time step.
type ConfigurationOrderError struct {
	Operation string
	Step      int
}

func (e *ConfigurationOrderError) Error() string {
	return fmt.Sprintf("fdtd: %s called after %d steps", e.Operation, e.Step)
}

func (e *ConfigurationOrderError) Unwrap() error { return ErrConfigurationOrder }

// InstabilityWarning is recorded, not returned, when the peak |Hz| exceeds
// the threshold or stops being finite. Stepping continues.
type InstabilityWarning struct {
	Step      int
	Time      float64
	Peak      float64
	Threshold float64
}

func (e *InstabilityWarning) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): peak |Hz| %.4g exceeds %.4g", e.Step, e.Time, e.Peak, e.Threshold)
}

func (e *InstabilityWarning) Unwrap() error { return ErrUnstable }
