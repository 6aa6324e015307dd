package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/physdeck/internal/dynamo"
	"github.com/san-kum/physdeck/internal/integrators"
	"github.com/san-kum/physdeck/internal/physics"
)

type spring struct{}

func (spring) Energy(x dynamo.State) float64 { return 0.5 * (x[0]*x[0] + x[1]*x[1]) }

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(spring{})
	m.Observe(dynamo.State{1, 0}, 0)
	m.Observe(dynamo.State{0, 1}, 1)
	if m.Value() != 0 {
		t.Errorf("expected no drift, got %f", m.Value())
	}

	m.Observe(dynamo.State{0, math.Sqrt(1.2)}, 2)
	if math.Abs(m.Value()-0.2) > 1e-12 {
		t.Errorf("expected drift 0.2, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear drift")
	}
}

func TestRadiusError(t *testing.T) {
	m := NewRadiusError(2)
	m.Observe(dynamo.State{2, 0}, 0)
	m.Observe(dynamo.State{0, -2.1}, 1)
	if math.Abs(m.Value()-0.05) > 1e-12 {
		t.Errorf("expected 0.05, got %f", m.Value())
	}
}

func TestEvaluateCyclotronOrbit(t *testing.T) {
	c := physics.Cyclotron{Particle: physics.Proton, Velocity: 3e6, Field: 0.1}
	n := 256
	states, err := c.Trace(integrators.NewRK4(), n)
	if err != nil {
		t.Fatal(err)
	}

	got := Evaluate(states, c.Period()/float64(n),
		NewEnergyDrift(physics.NewLorentz(c.Particle, c.Field)),
		NewRadiusError(c.Radius()),
	)
	if got["energy_drift"] > 1e-5 {
		t.Errorf("rk4 energy drift too large: %g", got["energy_drift"])
	}
	if got["radius_error"] > 1e-5 {
		t.Errorf("rk4 radius error too large: %g", got["radius_error"])
	}

	euler := Evaluate(mustTrace(t, c, integrators.NewEuler(), n), c.Period()/float64(n),
		NewEnergyDrift(physics.NewLorentz(c.Particle, c.Field)))
	if euler["energy_drift"] <= got["energy_drift"] {
		t.Errorf("euler should drift more than rk4: %g vs %g", euler["energy_drift"], got["energy_drift"])
	}
}

func mustTrace(t *testing.T, c physics.Cyclotron, integ dynamo.Integrator, n int) []dynamo.State {
	t.Helper()
	states, err := c.Trace(integ, n)
	if err != nil {
		t.Fatal(err)
	}
	return states
}
