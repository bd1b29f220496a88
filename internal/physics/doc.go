// Package physics implements the 2D mechanics engine.
//
// A [World] owns an ordered collection of [Body] values. Each step every
// body integrates its attached [Force] contributors with explicit Euler, or
// is driven in closed form by a [CircularMotion] override when one is
// enabled. The world then clamps bodies to the ground plane and resolves
// pairwise circle contacts with impulses:
//
//   - [Gravity], [Drag], [Friction], [Spring], [Constant], [Centripetal],
//     [Interaction]: force variants, each returning a zero vector when disabled
//   - [Detect], [ResolveElastic], [ResolveInelastic], [ResolvePerfectlyInelastic],
//     [Separate]: pairwise contact handling
//   - [EnergyTracker]: mechanical energy time series
//
// Degenerate geometry (zero-length normals, coincident bodies) never errors;
// it falls back to zero vectors so a step always completes.
//
// # Thread Safety
//
// World and Body are NOT safe for concurrent use. Callers serialize access.
package physics
