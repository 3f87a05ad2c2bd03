package metrics

import (
	"math"

	"github.com/san-kum/fdtd2d/internal/fdtd"
)

// Energy tracks the electromagnetic energy ½∫(Hz²+Ex²+Ey²) dA. Value is
// the most recent sample; Initial and Min are kept for decay checks.
type Energy struct {
	name    string
	initial float64
	current float64
	min     float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(v fdtd.View, t float64) {
	w := v.Energy()
	if e.samples == 0 {
		e.initial = w
		e.min = w
	}
	e.current = w
	e.min = math.Min(e.min, w)
	e.samples++
}

func (e *Energy) Value() float64   { return e.current }
func (e *Energy) Initial() float64 { return e.initial }
func (e *Energy) Min() float64     { return e.min }

// Remaining is the current energy as a fraction of the first sample.
func (e *Energy) Remaining() float64 {
	if e.initial == 0 {
		return 0
	}
	return e.current / e.initial
}

func (e *Energy) Reset() {
	e.initial = 0
	e.current = 0
	e.min = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation from the first observed
// energy.
type EnergyDrift struct {
	name      string
	reference float64
	maxDrift  float64
	samples   int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(v fdtd.View, t float64) {
	w := v.Energy()
	if e.samples == 0 {
		e.reference = w
	}
	e.samples++

	if e.reference != 0 {
		drift := math.Abs(w-e.reference) / math.Abs(e.reference)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.reference = 0
	e.maxDrift = 0
	e.samples = 0
}
