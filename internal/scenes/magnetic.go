package scenes

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physdeck/internal/config"
	"github.com/san-kum/physdeck/internal/integrators"
	"github.com/san-kum/physdeck/internal/metrics"
	"github.com/san-kum/physdeck/internal/physics"
	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/texfmt"
)

const (
	orbitColor = "#e92741"
	boxColor   = "#83c167"

	// OrbitDisplayRadius is the on-stage radius every orbit is scaled to.
	OrbitDisplayRadius = 1.6
	// OrbitTimeScale stretches one real revolution into a watchable run time.
	OrbitTimeScale = 1e-7
)

var orbitCenter = stage.Vec{X: 0, Y: -0.5}

func Magnetic() Scene {
	return Scene{
		Name:        "magnetic",
		Title:       "Charge in a Magnetic Field",
		Description: "radius and path of a charged particle in a uniform field",
		Segments: []Segment{
			{"intro", magneticIntro},
			{"variables", magneticVariables},
			{"visualization", magneticVisualization},
		},
		Metrics: func(cfg *config.Config) map[string]float64 {
			c, err := cfg.Cyclotron()
			if err != nil {
				return nil
			}
			out := map[string]float64{
				"radius":   c.Radius(),
				"period":   c.Period(),
				"run_time": c.Period() / OrbitTimeScale,
			}
			for k, v := range orbitQuality(c, cfg.Magnetic.Integrator, cfg.Magnetic.OrbitSteps) {
				out[k] = v
			}
			return out
		},
	}
}

func magneticIntro(ctx context.Context, env *Env) error {
	title := stage.Scale(stage.NewTex(`\text{Charge in a Magnetic Field}`, 0), 1.75)
	name := stage.NewText("By "+env.Config.Author, 0)
	stage.Shift(stage.ToCorner(title, stage.UL, 1), stage.Down.Scale(1.5))
	stage.NextTo(name, title, stage.Down, 0.3)
	stage.AlignTo(name, title, stage.Left)

	anims := []stage.Animation{
		stage.Write(title, stage.RunTime(2.5)),
		stage.Write(name, stage.RunTime(2.5)),
	}
	if path := env.Config.Magnetic.Logo; path != "" {
		logo := stage.NewImage(path, 3, 3)
		stage.ToCorner(logo, stage.UR, 0.5)
		anims = append(anims, stage.Create(logo, stage.RunTime(2.5)))
	}
	if err := env.Stage.Play(ctx, anims...); err != nil {
		return err
	}
	if err := env.Stage.Wait(ctx, env.Config.WaitTime); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}
	return env.Stage.Play(ctx, fadeAll(env.Stage)...)
}

func magneticVariables(ctx context.Context, env *Env) error {
	c, err := env.Config.Cyclotron()
	if err != nil {
		return err
	}
	title := stage.Scale(stage.NewTex(`\text{Variables}`, 0), 1.5)
	stage.ToCorner(title, stage.UL, 1)
	eq := stage.Scale(stage.NewTex(`R = \frac{mv}{Bq}`, 0), 1.5)
	stage.ToCorner(eq, stage.UR, 1)
	box := stage.SurroundingRect(eq, 0.2, boxColor)

	if err := env.Stage.Play(ctx, stage.Write(title)); err != nil {
		return err
	}
	if err := env.Stage.Wait(ctx, env.Config.WaitTime); err != nil {
		return err
	}
	if err := env.Stage.Play(ctx, stage.Write(eq), stage.Create(box)); err != nil {
		return err
	}

	defs := VariableDefs(c)
	stage.Arrange(stage.Down, 0.3, defs...)
	for _, d := range defs {
		if err := env.Stage.Play(ctx, stage.Write(d)); err != nil {
			return err
		}
	}
	if err := env.Stage.Wait(ctx, env.Config.WaitTime); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}
	return env.Stage.Play(ctx, fadeAll(env.Stage)...)
}

// VariableDefs lists the known quantities of c, one drawable per line.
func VariableDefs(c physics.Cyclotron) []*stage.Drawable {
	line := func(name, sym, value, unit string) *stage.Drawable {
		return stage.NewTex(fmt.Sprintf(`\text{%s ($ %s $) } \rightarrow %s \text{ %s}`, name, sym, value, unit), 0)
	}
	return []*stage.Drawable{
		line("mass", "m", texfmt.Exponential(c.Particle.Mass), "kg"),
		line("velocity", "V", texfmt.Exponential(c.Velocity), "m/s"),
		line("strength", "B", texfmt.Plain(c.Field), "T"),
		line("charge", "q", texfmt.Exponential(math.Abs(c.Particle.Charge)), "C"),
	}
}

// RadiusEquation is the worked R = mv/(Bq) for c.
func RadiusEquation(c physics.Cyclotron) string {
	return fmt.Sprintf(`R = \frac{mv}{Bq} = \frac{(%s) \cdot (%s)}{(%s) \cdot (%s)} = %s \text{ m}`,
		texfmt.Exponential(c.Particle.Mass), texfmt.Exponential(c.Velocity),
		texfmt.Plain(c.Field), texfmt.Exponential(math.Abs(c.Particle.Charge)),
		readable(c.Radius(), 3))
}

// OrbitPath integrates one revolution of c and maps it onto a circle of
// OrbitDisplayRadius around center.
func OrbitPath(c physics.Cyclotron, integrator string, steps int, center stage.Vec) ([]stage.Vec, error) {
	integ, err := integrators.ByName(integrator)
	if err != nil {
		return nil, err
	}
	orbit, err := c.Orbit(integ, steps)
	if err != nil {
		return nil, err
	}
	k := OrbitDisplayRadius / c.Radius()
	path := make([]stage.Vec, len(orbit))
	for i, p := range orbit {
		path[i] = center.Add(stage.Vec{X: p.X, Y: p.Y}.Scale(k))
	}
	return path, nil
}

func magneticVisualization(ctx context.Context, env *Env) error {
	c, err := env.Config.Cyclotron()
	if err != nil {
		return err
	}
	path, err := OrbitPath(c, env.Config.Magnetic.Integrator, env.Config.Magnetic.OrbitSteps, orbitCenter)
	if err != nil {
		return err
	}
	env.Log.Debug("orbit", "particle", c.Particle.Name, "radius", c.Radius(), "period", c.Period(), "clockwise", c.Clockwise())

	eq := stage.NewTex(RadiusEquation(c), 36)
	stage.ToEdge(eq, stage.Up, stage.DefaultBuff)
	if err := env.Stage.Play(ctx, stage.Write(eq)); err != nil {
		return err
	}

	circ := stage.MoveTo(stage.NewCircle(OrbitDisplayRadius, orbitColor), orbitCenter)
	center := stage.MoveTo(stage.NewDot(), orbitCenter)
	point := stage.MoveTo(stage.NewDot(), orbitCenter)
	radius := stage.Track(stage.NewLine(orbitCenter, orbitCenter), point)
	if err := env.Stage.Play(ctx,
		stage.GrowFromCenter(circ),
		stage.FadeIn(center, stage.Origin),
		stage.FadeIn(point, stage.Origin),
		stage.FadeIn(radius, stage.Origin),
	); err != nil {
		return err
	}
	if err := env.Stage.Wait(ctx, env.Config.WaitTime); err != nil {
		return err
	}

	brace := stage.NewBrace(circ, `\vec{B} \text{ } \otimes`)
	if err := env.Stage.Play(ctx, stage.Create(brace)); err != nil {
		return err
	}
	if err := env.Stage.Wait(ctx, env.Config.WaitTime); err != nil {
		return err
	}

	if err := env.Stage.Play(ctx, stage.MoveToAnim(point, path[0])); err != nil {
		return err
	}
	travel := stage.MoveAlongPath(point, path, stage.RunTime(c.Period()/OrbitTimeScale), stage.WithEasing(stage.Linear))
	if err := env.Stage.Play(ctx, travel); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}
	return env.Stage.Play(ctx, fadeAll(env.Stage)...)
}

// fadeAll fades out everything currently shown.
func fadeAll(st *stage.Stage) []stage.Animation {
	shown := st.Shown()
	anims := make([]stage.Animation, 0, len(shown))
	for _, d := range shown {
		anims = append(anims, stage.FadeOut(d, stage.Origin))
	}
	return anims
}

// orbitQuality reports how far the integrated orbit strays from the exact
// circle. It is empty when the orbit cannot be traced.
func orbitQuality(c physics.Cyclotron, integrator string, steps int) map[string]float64 {
	integ, err := integrators.ByName(integrator)
	if err != nil {
		return nil
	}
	states, err := c.Trace(integ, steps)
	if err != nil {
		return nil
	}
	return metrics.Evaluate(states, c.Period()/float64(steps),
		metrics.NewEnergyDrift(physics.NewLorentz(c.Particle, c.Field)),
		metrics.NewRadiusError(c.Radius()),
	)
}
