// Package physics holds the closed-form results the lectures derive and
// the dynamical model used to animate them:
//
//   - [Pipe]: Poiseuille flow through a cylindrical pipe
//   - [Cyclotron]: a charged [Particle] in a uniform magnetic field
//   - [Lorentz]: the equations of motion behind [Cyclotron.Orbit]
//
// [Lorentz] implements [dynamo.System] and [dynamo.Hamiltonian], so the
// orbit can be integrated with any stepper from the integrators package and
// checked for energy drift:
//
//	c := physics.Cyclotron{Particle: physics.Proton, Velocity: 3e6, Field: 0.1}
//	path, err := c.Orbit(integrators.NewRK4(), 256)
package physics
