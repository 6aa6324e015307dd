package scenes

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/physdeck/internal/config"
	"github.com/san-kum/physdeck/internal/physics"
	"github.com/san-kum/physdeck/internal/reveal"
	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/texfmt"
)

const PoiseuilleEquation = `Q = \frac{\pi r^4 \Delta P}{8 \eta L}`

func Poiseuille() Scene {
	return Scene{
		Name:        "poiseuille",
		Title:       "Poiseuille's Law",
		Description: "volumetric flow of a viscous fluid through a pipe",
		Segments: []Segment{
			{"intro", poiseuilleIntro},
			{"equation", poiseuilleEquationSlide},
			{"variable-defs", poiseuilleVariableDefs},
			{"assumptions", poiseuilleAssumptions},
			{"problem", poiseuilleProblem},
			{"variables", poiseuilleVariables},
			{"solve", poiseuilleSolve},
		},
		Metrics: func(cfg *config.Config) map[string]float64 {
			p := cfg.Poiseuille
			return map[string]float64{
				"numerator":   p.Numerator(),
				"denominator": p.Denominator(),
				"flow_rate":   p.FlowRate(),
			}
		},
	}
}

func poiseuilleIntro(ctx context.Context, env *Env) error {
	title := env.title("Poiseuille's Law")
	course := env.subtitle(env.Config.Course)
	by := env.subtitle(env.Config.Byline())
	stage.Arrange(stage.Down, 0.5, title, course, by)

	if err := env.Stage.Play(ctx, stage.Write(title, env.paced()...)); err != nil {
		return err
	}
	if err := env.Stage.Play(ctx, stage.Write(course, env.paced()...), stage.Write(by, env.paced()...)); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}
	return env.Stage.Play(ctx,
		stage.FadeOut(title, stage.Left),
		stage.Uncreate(course),
		stage.FadeOut(by, stage.Right),
	)
}

func poiseuilleEquationSlide(ctx context.Context, env *Env) error {
	eq := stage.NewTex(PoiseuilleEquation, env.Config.TitleSize)
	textbook := stage.NewTex(textbookForm(PoiseuilleEquation), env.Config.TitleSize)
	name := env.subtitle("Poiseuille's Law")
	stage.Arrange(stage.Down, 1, eq, name)

	if err := env.Stage.Play(ctx, stage.Write(eq, env.paced()...), stage.Write(name, env.paced()...)); err != nil {
		return err
	}
	if err := env.Stage.Wait(ctx, 1); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}
	if err := env.Stage.Play(ctx, stage.Transform(eq, textbook)); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}
	return env.Stage.Play(ctx, stage.Uncreate(eq), stage.FadeOut(name, stage.Down))
}

// textbookForm spells the pressure drop out as P₂ - P₁ and uses R for the radius.
func textbookForm(eq string) string {
	eq = strings.Replace(eq, `\Delta P`, `(P_2 - P_1)`, 1)
	return strings.Replace(eq, "r^4", "R^4", 1)
}

func poiseuilleVariableDefs(ctx context.Context, env *Env) error {
	eq := stage.NewTex(PoiseuilleEquation, 60)
	stage.ToCorner(eq, stage.UR, stage.DefaultBuff)
	defs := []*stage.Drawable{
		stage.NewTex(`Q = \text{flow rate} \rightarrow \frac{\text{m$^3$}}{\text{s}}`, 0),
		stage.NewTex(`r = \text{radius of pipe} \rightarrow \text{m}`, 0),
		stage.NewTex(`\Delta P = \text{pressure gradient} \rightarrow \frac{\text{N}}{\text{m$^2$}} \equiv \text{Pa}`, 0),
		stage.NewTex(`\eta = \text{viscosity} \rightarrow \text{Pa} \cdot \text{s}`, 0),
		stage.NewTex(`L = \text{length of pipe} \rightarrow \text{m}`, 0),
	}
	stage.Arrange(stage.Down, 0.25, defs...)

	anims := []stage.Animation{stage.FadeIn(eq, stage.DL)}
	for _, d := range defs {
		anims = append(anims, stage.Write(d, env.paced()...))
	}
	if err := env.Stage.Play(ctx, anims...); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}

	anims = anims[:0]
	for _, d := range defs {
		anims = append(anims, stage.Uncreate(d))
	}
	return env.Stage.Play(ctx, append(anims, stage.FadeOut(eq, stage.UR))...)
}

// cornerSlide shows a titled block of text and clears it on advance.
func cornerSlide(ctx context.Context, env *Env, heading string, body *stage.Drawable) error {
	title := env.title(heading)
	stage.ToCorner(title, stage.UL, stage.DefaultBuff)

	if err := env.Stage.Play(ctx, stage.FadeIn(title, stage.DR), stage.Write(body, env.paced()...)); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}
	return env.Stage.Play(ctx, stage.Uncreate(body), stage.FadeOut(title, stage.UL))
}

func poiseuilleAssumptions(ctx context.Context, env *Env) error {
	return cornerSlide(ctx, env, "Assumptions", env.subtitle("Fluid is Laminar\nSystem is Closed"))
}

func poiseuilleProblem(ctx context.Context, env *Env) error {
	return cornerSlide(ctx, env, "Problem", stage.NewText(problemText(env.Config.Poiseuille), 30))
}

func problemText(p physics.Pipe) string {
	return fmt.Sprintf("Calculate the volumetric flow rate of laminar fluid in a pipe with a radius of %s meters\n"+
		"and pressure gradient of %s Pa. The viscosity of the liquid is %s Pa x s and the length\n"+
		"of the pipe is %s meters.",
		texfmt.Plain(p.Radius), texfmt.Plain(p.Pressure), texfmt.Plain(p.Viscosity), texfmt.Plain(p.Length))
}

func poiseuilleVariables(ctx context.Context, env *Env) error {
	p := env.Config.Poiseuille
	title := env.title("Variables")
	stage.ToCorner(title, stage.UL, stage.DefaultBuff)

	vars := []*stage.Drawable{
		stage.NewTex(`Q = \text{? } \frac{\text{m}^3}{\text{s}}`, 0),
		stage.NewTex(fmt.Sprintf(`r = %s \text{ m}`, texfmt.Plain(p.Radius)), 0),
		stage.NewTex(fmt.Sprintf(`\Delta P = %s \text{ Pa}`, texfmt.Plain(p.Pressure)), 0),
		stage.NewTex(fmt.Sprintf(`\eta = %s \text{ Pa} \times \text{s}`, texfmt.Plain(p.Viscosity)), 0),
		stage.NewTex(fmt.Sprintf(`L = %s \text{ meters}`, texfmt.Plain(p.Length)), 0),
	}
	stage.Arrange(stage.Down, 0.25, vars...)
	eq := stage.NewTex(PoiseuilleEquation, 60)
	stage.NextTo(eq, stage.Envelope(vars...), stage.Left, 0.25)

	anims := []stage.Animation{stage.FadeIn(title, stage.DR)}
	for _, v := range vars {
		anims = append(anims, stage.Write(v, env.paced()...))
	}
	anims = append(anims, stage.Write(eq, env.paced()...))
	if err := env.Stage.Play(ctx, anims...); err != nil {
		return err
	}
	if err := env.hold(ctx); err != nil {
		return err
	}

	anims = []stage.Animation{stage.FadeOut(title, stage.UL), stage.FadeOut(eq, stage.Left)}
	for _, v := range vars {
		anims = append(anims, stage.FadeOut(v, stage.Right))
	}
	return env.Stage.Play(ctx, anims...)
}

func poiseuilleSolve(ctx context.Context, env *Env) error {
	title := env.title("Solve")
	stage.ToCorner(title, stage.UL, stage.DefaultBuff)
	if err := env.Stage.Play(ctx, stage.FadeIn(title, stage.DR)); err != nil {
		return err
	}

	layout := reveal.DefaultLayout()
	layout.ExprSize = env.Config.SubtitleSize
	layout.RunTime = env.Config.RunTime
	layout.Easing = env.easing

	return reveal.New(env.Stage, env.Signal, layout).Present(ctx, SolveSteps(env.Config.Poiseuille))
}

// SolveSteps is the worked Poiseuille derivation for p, in playback order.
func SolveSteps(p physics.Pipe) []reveal.Step {
	r, dp := texfmt.Plain(p.Radius), texfmt.Plain(p.Pressure)
	eta, l := texfmt.Plain(p.Viscosity), texfmt.Plain(p.Length)
	top := readable(p.Numerator(), 2)
	bottom := readable(p.Denominator(), 2)
	q := readable(p.FlowRate(), 3)

	return []reveal.Step{
		{Label: "Insert", Expr: fmt.Sprintf(`Q = \frac{\pi \cdot %s^4 \cdot %s}{8 \cdot %s \cdot %s}`, r, dp, eta, l)},
		{Label: "Combine Like Terms (Top)", Expr: fmt.Sprintf(`Q = \frac{\approx %s}{8 \cdot %s \cdot %s}`, top, eta, l)},
		{Label: "Combine Like Terms (Bottom)", Expr: fmt.Sprintf(`Q = \frac{\approx %s}{%s}`, top, bottom)},
		{Label: "Combine Like Terms", Expr: fmt.Sprintf(`Q \approxeq %s`, q)},
		{Label: "Final Answer", Expr: fmt.Sprintf(`Q \approxeq %s \frac{\text{m}^3}{\text{s}}`, q)},
	}
}

// readable rounds moderate values and switches to scientific notation for
// very large or very small ones.
func readable(x float64, places int) string {
	if a := math.Abs(x); a != 0 && (a < 0.01 || a >= 1e5) {
		return texfmt.Exponential(x)
	}
	return texfmt.Round(x, places)
}
