package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// InPlaceIntegrator writes a step into a caller-owned state instead of
// allocating one.
type InPlaceIntegrator interface {
	Integrator
	StepInto(dst State, dyn System, x State, u Control, t float64, dt float64)
}

// Metric summarises a trajectory one state at a time.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Trace integrates sys from x0 for the given number of steps and returns
// every state including x0. Integration stops at the first invalid state.
func Trace(sys System, integ Integrator, x0 State, dt float64, steps int) ([]State, error) {
	if dt <= 0 || steps <= 0 {
		return nil, fmt.Errorf("trace: dt=%g steps=%d: %w", dt, steps, ErrBadStep)
	}
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("trace: got %d values for %d-dimensional system: %w", len(x0), sys.StateDim(), ErrDimensionMismatch)
	}

	// Every state is a view into one slab.
	dim := len(x0)
	slab := make([]float64, (steps+1)*dim)
	states := make([]State, steps+1)
	for i := range states {
		states[i] = State(slab[i*dim : (i+1)*dim : (i+1)*dim])
	}
	copy(states[0], x0)

	u := make(Control, sys.ControlDim())
	inPlace, _ := integ.(InPlaceIntegrator)

	t := 0.0
	for i := 0; i < steps; i++ {
		prev, next := states[i], states[i+1]
		if inPlace != nil {
			inPlace.StepInto(next, sys, prev, u, t, dt)
		} else {
			copy(next, integ.Step(sys, prev, u, t, dt))
		}
		t += dt
		if !next.IsValid() {
			return states[:i+1], &TraceError{Step: i, Time: t, State: next.Clone(), Wrapped: ErrInvalidState}
		}
	}
	return states, nil
}
