package physics

import "math"

// Pipe describes laminar flow through a closed cylindrical pipe.
// All values are SI: metres, pascals, pascal-seconds.
type Pipe struct {
	Radius    float64 `yaml:"radius"`
	Pressure  float64 `yaml:"pressure"`
	Viscosity float64 `yaml:"viscosity"`
	Length    float64 `yaml:"length"`
}

// Numerator is π r⁴ ΔP.
func (p Pipe) Numerator() float64 {
	return math.Pi * math.Pow(p.Radius, 4) * p.Pressure
}

// Denominator is 8 η L.
func (p Pipe) Denominator() float64 {
	return 8 * p.Viscosity * p.Length
}

// FlowRate returns the volumetric flow rate Q in m³/s.
func (p Pipe) FlowRate() float64 {
	return p.Numerator() / p.Denominator()
}

// WithRadius returns a copy of p with a different radius.
func (p Pipe) WithRadius(r float64) Pipe {
	p.Radius = r
	return p
}
