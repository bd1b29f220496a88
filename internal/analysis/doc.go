// Package analysis extracts oscillation characteristics from recorded
// runs.
//
//   - [DominantFrequency]: strongest frequency of a sampled series via FFT
//   - [Period]: reciprocal of the dominant frequency
//   - [CrossingPeriod]: period from interpolated mean crossings
//   - [NewPhasePortrait]: position against finite-difference velocity
//
// A spring run's x trajectory, for instance:
//
//	xs := analysis.Series(traj, analysis.AxisX)
//	f, err := analysis.DominantFrequency(xs, dt)
package analysis
