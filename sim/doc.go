// Package sim implements the six-vertex model MCMC sampler: the lattice
// data model, the flip kernel, and the Metropolis-Hastings driver.
//
// # Reading Guide
//
// Start with these files to understand the sampler:
//   - vertex.go: the six vertex types and their per-direction relabelling tables
//   - lattice.go: the R x C cell grid, height builder, and parse/snapshot round-trip
//   - weights.go: the six Boltzmann weights and the derived rho normaliser
//   - flip.go: the flippability predicate, weight-ratio computation, and atomic flip
//   - engine.go: Engine, the MCMC driver loop (Step/Run) over one upper/lower pair
//   - emission.go: the flip-count-ordered queue that fires sink emissions
//   - rng.go: the deterministic, seed-reproducible PRNG
//
// # Architecture
//
// One Engine owns both lattices, the weights, rho, the PRNG, and the flip
// counters — a single value replacing the source's process-wide globals
// and its mirrored matrix-1/matrix-2 routines. Every routine in this
// package takes the acting lattice and its sticky counterpart as explicit
// parameters instead of being duplicated per lattice.
//
// Observation sinks live in the sibling sim/sinks package: they are pure
// readers of *Lattice state, scheduled by an EmissionQueue, and never
// mutate what they observe.
package sim
