// Package metrics checks integrated trajectories against the physics they
// are supposed to obey.
package metrics

import (
	"math"

	"github.com/san-kum/physdeck/internal/dynamo"
)

// EnergyDrift is the largest relative change of energy from the first
// observed state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	sys           dynamo.Hamiltonian
}

func NewEnergyDrift(sys dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.sys.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// RadiusError is the largest relative distance of (x[0], x[1]) from a
// circle of the given radius around the origin.
type RadiusError struct {
	radius  float64
	maxErr  float64
	samples int
}

func NewRadiusError(radius float64) *RadiusError {
	return &RadiusError{radius: radius}
}

func (r *RadiusError) Name() string { return "radius_error" }

func (r *RadiusError) Observe(x dynamo.State, t float64) {
	if len(x) < 2 || r.radius == 0 {
		return
	}
	r.samples++
	d := math.Hypot(x[0], x[1])
	r.maxErr = math.Max(r.maxErr, math.Abs(d-r.radius)/r.radius)
}

func (r *RadiusError) Value() float64 { return r.maxErr }

func (r *RadiusError) Reset() {
	r.maxErr = 0
	r.samples = 0
}

// Evaluate feeds states sampled every dt to ms and collects their values.
func Evaluate(states []dynamo.State, dt float64, ms ...dynamo.Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, x := range states {
			m.Observe(x, float64(i)*dt)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
