// Package dynamo provides the numerical primitives behind the orbit and
// flow visualizations.
//
// The package defines the fundamental interfaces for integrating ordinary
// differential equations (dX/dt = f(X, u, t)):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems
//   - [Integrator]: numerical stepper interface
//   - [Metric]: trajectory summary fed one state at a time
//
// # Example
//
//	sys := physics.NewLorentz(physics.Proton, 0.1)
//	rk := integrators.NewRK4()
//	path, _ := dynamo.Trace(sys, rk, x0, dt, steps)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
package dynamo
