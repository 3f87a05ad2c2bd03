// Package analysis provides signal tools for solver output.
//
//   - [PowerSpectrum]: one-sided power spectrum of a uniformly sampled series
//   - [DominantFrequency]: frequency of the strongest non-DC bin
//   - [Correlation]: Pearson correlation of two profiles
//   - [PeakPositions]: locations of the largest sample on each side of a split
//   - [Sweep]: evaluate a scalar result across a parameter range
//
// # Pulse Split Check
//
// A Gaussian released at rest splits into two half-amplitude copies:
//
//	want := analytic.TravelingWave(xs, 0, 0.25, 2)
//	r, _ := analysis.Correlation(section, want)
//	if r < 0.99 {
//	    // dispersion or boundary effects dominate
//	}
package analysis
