// Package physics provides unit-checked force models for simulation.
//
// Each model implements [sim.System], returning one force in Newtons per
// body:
//
//   - [Falling]: uniform gravity with quadratic drag and a terminal speed
//   - [SpringLattice]: a crystal of masses joined by springs, see [NewCube]
//   - [Gravity]: the Newtonian N-body problem
//
// Parameters are quantities, not bare numbers, and constructors reject
// them with a [units.UnitError] when their dimensions are wrong:
//
//	f, err := physics.NewFalling(physics.EarthGravity, physics.Mph.Scale(120))
//
// All three models also implement [sim.Potential] so total energy can be
// tracked during a run.
package physics
