package physics

import (
	"math"
	"testing"

	"github.com/san-kum/physdeck/internal/dynamo"
	"github.com/san-kum/physdeck/internal/integrators"
)

func TestPipeFlowRate(t *testing.T) {
	p := Pipe{Radius: 2, Pressure: 2, Viscosity: 3, Length: 3}

	if math.Abs(p.Numerator()-100.53) > 0.01 {
		t.Errorf("expected numerator ~100.53, got %.4f", p.Numerator())
	}
	if p.Denominator() != 72 {
		t.Errorf("expected denominator 72, got %f", p.Denominator())
	}
	if math.Abs(p.FlowRate()-1.396) > 0.001 {
		t.Errorf("expected Q ~1.396, got %.4f", p.FlowRate())
	}
}

func TestPipeRadiusFourthPower(t *testing.T) {
	p := Pipe{Radius: 1, Pressure: 2, Viscosity: 3, Length: 3}
	q1 := p.FlowRate()
	q2 := p.WithRadius(2).FlowRate()
	if math.Abs(q2/q1-16) > 1e-9 {
		t.Errorf("doubling radius should scale Q by 16, got %.4f", q2/q1)
	}
}

func TestCyclotronRadius(t *testing.T) {
	tests := []struct {
		particle Particle
		expected float64
	}{
		{Proton, 0.31369},
		{Electron, 1.7058e-4},
	}

	for _, tt := range tests {
		c := Cyclotron{Particle: tt.particle, Velocity: 3e6, Field: 0.1}
		r := c.Radius()
		if math.Abs(r-tt.expected)/tt.expected > 1e-3 {
			t.Errorf("%s: expected radius %.5g, got %.5g", tt.particle.Name, tt.expected, r)
		}
	}
}

func TestOrbitClosesOnCircle(t *testing.T) {
	for _, p := range []Particle{Proton, Electron} {
		c := Cyclotron{Particle: p, Velocity: 3e6, Field: 0.1}
		path, err := c.Orbit(integrators.NewRK4(), 512)
		if err != nil {
			t.Fatalf("%s: orbit failed: %v", p.Name, err)
		}
		if len(path) != 513 {
			t.Fatalf("%s: expected 513 points, got %d", p.Name, len(path))
		}

		r := c.Radius()
		for i, pt := range path {
			d := math.Hypot(pt.X, pt.Y)
			if math.Abs(d-r)/r > 1e-4 {
				t.Fatalf("%s: point %d at distance %.6g, expected %.6g", p.Name, i, d, r)
			}
		}

		last := path[len(path)-1]
		if math.Hypot(last.X-path[0].X, last.Y-path[0].Y)/r > 1e-3 {
			t.Errorf("%s: orbit did not close: %+v vs %+v", p.Name, last, path[0])
		}
	}
}

func TestOrbitDirection(t *testing.T) {
	proton := Cyclotron{Particle: Proton, Velocity: 3e6, Field: 0.1}
	electron := Cyclotron{Particle: Electron, Velocity: 3e6, Field: 0.1}

	pp, _ := proton.Orbit(integrators.NewRK4(), 64)
	ep, _ := electron.Orbit(integrators.NewRK4(), 64)

	if pp[1].Y <= 0 {
		t.Errorf("proton should start moving counterclockwise, got y=%g", pp[1].Y)
	}
	if ep[1].Y >= 0 {
		t.Errorf("electron should start moving clockwise, got y=%g", ep[1].Y)
	}
}

func TestLorentzConservesEnergy(t *testing.T) {
	sys := NewLorentz(Proton, 0.1)
	var _ dynamo.Hamiltonian = sys

	c := Cyclotron{Particle: Proton, Velocity: 3e6, Field: 0.1}
	x0 := dynamo.State{c.Radius(), 0, 0, c.Velocity}
	states, err := dynamo.Trace(sys, integrators.NewRK4(), x0, c.Period()/256, 256)
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	e0 := sys.Energy(states[0])
	e1 := sys.Energy(states[len(states)-1])
	if math.Abs(e1-e0)/e0 > 1e-6 {
		t.Errorf("energy drift too large: %g -> %g", e0, e1)
	}
}

func TestParticleByName(t *testing.T) {
	if p, err := ParticleByName("electron"); err != nil || p.Charge >= 0 {
		t.Errorf("expected negative electron, got %+v (%v)", p, err)
	}
	if _, err := ParticleByName("muon"); err == nil {
		t.Error("expected error for unknown particle")
	}
}

func TestSweep(t *testing.T) {
	xs, ys := Sweep(func(x float64) float64 { return x * x }, 0, 2, 5)
	if len(xs) != 5 || xs[4] != 2 || ys[2] != 1 {
		t.Errorf("unexpected sweep: %v %v", xs, ys)
	}
}
