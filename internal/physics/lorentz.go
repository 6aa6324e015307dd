package physics

import "github.com/san-kum/physdeck/internal/dynamo"

// Lorentz is planar motion of a point charge under F = q v × B with B
// along -z. State is (x, y, vx, vy).
type Lorentz struct {
	Mass   float64
	Charge float64
	Field  float64
}

func NewLorentz(p Particle, field float64) *Lorentz {
	return &Lorentz{Mass: p.Mass, Charge: p.Charge, Field: field}
}

func (l *Lorentz) StateDim() int   { return 4 }
func (l *Lorentz) ControlDim() int { return 0 }

func (l *Lorentz) Derive(s dynamo.State, _ dynamo.Control, _ float64) dynamo.State {
	if len(s) < 4 {
		return make(dynamo.State, 4)
	}
	vx, vy := s[2], s[3]
	k := l.Charge * l.Field / l.Mass
	// v × (0, 0, -B) = (-vy B, vx B, 0)
	return dynamo.State{vx, vy, -k * vy, k * vx}
}

// Energy is kinetic only; a magnetic force does no work.
func (l *Lorentz) Energy(s dynamo.State) float64 {
	if len(s) < 4 {
		return 0
	}
	return 0.5 * l.Mass * (s[2]*s[2] + s[3]*s[3])
}
