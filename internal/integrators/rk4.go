package integrators

import "github.com/san-kum/physdeck/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta stepper. Its stage buffers
// are sized on first use and reused on every step, so an RK4 must not be
// shared between goroutines.
type RK4 struct {
	k   [4]dynamo.State
	mid dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) grow(n int) {
	if len(r.mid) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.mid = make(dynamo.State, n)
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	out := make(dynamo.State, len(x))
	r.StepInto(out, dyn, x, u, t, dt)
	return out
}

// StepInto writes the state one step after x into dst. dst may be x.
func (r *RK4) StepInto(dst dynamo.State, dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) {
	r.grow(len(x))
	half := dt / 2

	copy(r.k[0], dyn.Derive(x, u, t))
	offset(r.mid, x, r.k[0], half)
	copy(r.k[1], dyn.Derive(r.mid, u, t+half))
	offset(r.mid, x, r.k[1], half)
	copy(r.k[2], dyn.Derive(r.mid, u, t+half))
	offset(r.mid, x, r.k[2], dt)
	copy(r.k[3], dyn.Derive(r.mid, u, t+dt))

	w := dt / 6
	for i := range dst {
		dst[i] = x[i] + w*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
}

// offset sets dst = x + h*k.
func offset(dst, x, k dynamo.State, h float64) {
	for i := range dst {
		dst[i] = x[i] + h*k[i]
	}
}
