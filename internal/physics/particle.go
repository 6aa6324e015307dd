package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physdeck/internal/dynamo"
)

type Particle struct {
	Name   string
	Mass   float64 // kg
	Charge float64 // C, signed
}

var (
	Proton   = Particle{Name: "proton", Mass: 1.673e-27, Charge: 1.600e-19}
	Electron = Particle{Name: "electron", Mass: 9.109e-31, Charge: -1.602e-19}
)

// ParticleByName looks up one of the built-in particles.
func ParticleByName(name string) (Particle, error) {
	switch name {
	case Proton.Name:
		return Proton, nil
	case Electron.Name:
		return Electron, nil
	}
	return Particle{}, fmt.Errorf("unknown particle: %s", name)
}

// Cyclotron is a charged particle moving perpendicular to a uniform field
// pointing into the page.
type Cyclotron struct {
	Particle Particle
	Velocity float64 // m/s
	Field    float64 // T
}

// Radius returns R = mv / (B|q|).
func (c Cyclotron) Radius() float64 {
	return c.Particle.Mass * c.Velocity / (c.Field * math.Abs(c.Particle.Charge))
}

// Period returns the time for one revolution, 2πm / (|q|B).
func (c Cyclotron) Period() float64 {
	return 2 * math.Pi * c.Particle.Mass / (math.Abs(c.Particle.Charge) * c.Field)
}

// Clockwise reports the sense of rotation seen with B into the page.
// Positive charges turn counterclockwise.
func (c Cyclotron) Clockwise() bool {
	return c.Particle.Charge < 0
}

type Point struct {
	X, Y float64
}

// Trace integrates one full revolution in n steps. The particle starts on
// the positive x axis and circles the origin.
func (c Cyclotron) Trace(integ dynamo.Integrator, n int) ([]dynamo.State, error) {
	sys := NewLorentz(c.Particle, c.Field)
	vy := c.Velocity
	if c.Clockwise() {
		vy = -vy
	}
	x0 := dynamo.State{c.Radius(), 0, 0, vy}

	states, err := dynamo.Trace(sys, integ, x0, c.Period()/float64(n), n)
	if err != nil {
		return nil, fmt.Errorf("orbit %s: %w", c.Particle.Name, err)
	}
	return states, nil
}

// Orbit is the path of Trace relative to the orbit centre.
func (c Cyclotron) Orbit(integ dynamo.Integrator, n int) ([]Point, error) {
	states, err := c.Trace(integ, n)
	if err != nil {
		return nil, err
	}
	path := make([]Point, len(states))
	for i, s := range states {
		path[i] = Point{X: s[0], Y: s[1]}
	}
	return path, nil
}
