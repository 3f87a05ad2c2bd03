// Package units holds the normalized vacuum constants shared by the 1D and 2D
// solvers. Lengths and times are measured so that light covers one length
// unit per time unit.
package units

import "math"

const (
	// C0 is the propagation speed in vacuum.
	C0 = 1.0
	// Eps0 is the vacuum permittivity.
	Eps0 = 1.0
	// Mu0 is the vacuum permeability.
	Mu0 = 1.0
)

// Eta0 is the free-space wave impedance sqrt(Mu0/Eps0).
var Eta0 = math.Sqrt(Mu0 / Eps0)
