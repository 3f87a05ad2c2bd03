// Package fdtd provides a two-dimensional finite-difference time-domain
// solver for the (Hz, Ex, Ey) field family on a staggered Yee grid.
//
// The package is organized around a small set of cooperating parts:
//
//   - [Grid]: uniform node coordinates along x and y
//   - [Fields]: Hz at the nodes, Ex and Ey on the edge midpoints, plus the
//     split magnetic accumulators used inside the absorbing layer
//   - [Medium]: per-cell permittivity, conductivity and coupling coefficient
//   - [Profile]: graded conductivity of the perfectly matched layer
//   - [Solver]: configuration sequence and the leapfrog stepping loop
//
// # Example
//
//	s, _ := fdtd.New(x, y)
//	_ = s.SetInitialCondition(hz0)
//	_ = s.SetPML(10, 2.82, 1.5e-6, s.Grid().Dx())
//	hz, _ := s.RunUntil(2.0, fdtd.CourantStep(s.Grid(), 0.5))
//
// # Stability
//
// The time step is not clamped. Steps above [CourantLimit] diverge; the
// solver records an [InstabilityWarning] once the peak |Hz| crosses the
// configured threshold but keeps stepping.
//
// # Thread Safety
//
// A Solver is NOT safe for concurrent use. [WithWorkers] splits each
// half-step sweep across goroutines; the result is bit-identical to the
// sequential sweep.
package fdtd
