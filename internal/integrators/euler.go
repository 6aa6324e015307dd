package integrators

import "github.com/san-kum/physdeck/internal/dynamo"

// Euler is the explicit first-order stepper. It spirals outward on
// circular orbits and is kept for side-by-side comparison with RK4.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t float64, dt float64) dynamo.State {
	out := make(dynamo.State, len(x))
	e.StepInto(out, dyn, x, u, t, dt)
	return out
}

func (e *Euler) StepInto(dst dynamo.State, dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) {
	offset(dst, x, dyn.Derive(x, u, t), dt)
}
