package stage

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return clamp01(t) }

// Smooth is the quintic smootherstep: zero velocity and acceleration at
// both ends.
func Smooth(t float64) float64 {
	t = clamp01(t)
	return t * t * t * (t*(t*6-15) + 10)
}

const (
	springSamples = 120
	// springSettle is how far the spring must have decayed, relative to its
	// start, by the end of the animation.
	springSettle = 1e-3
)

// Spring samples a harmonica spring settling from 0 to 1 over the
// animation. Damping below 1 overshoots. The spring's own time is
// stretched so it has settled when the animation ends.
func Spring(frequency, damping float64) Easing {
	span := 1.0
	if decay := frequency * damping; decay > 0 {
		span = math.Log(1/springSettle) / decay
	}
	s := harmonica.NewSpring(span/springSamples, frequency, damping)
	table := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = s.Update(pos, vel, 1.0)
		table[i] = pos
	}
	table[springSamples] = 1

	return func(t float64) float64 {
		t = clamp01(t)
		x := t * springSamples
		i := int(x)
		if i >= springSamples {
			return 1
		}
		return table[i] + (table[i+1]-table[i])*(x-float64(i))
	}
}

// EasingByName resolves the easing names accepted in config files.
func EasingByName(name string) (Easing, error) {
	switch name {
	case "", "smooth":
		return Smooth, nil
	case "linear":
		return Linear, nil
	case "spring":
		return Spring(7, 0.6), nil
	}
	return nil, fmt.Errorf("unknown easing: %s (available: linear, smooth, spring)", name)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
