package scenes

import (
	"context"

	"github.com/san-kum/physdeck/internal/stage"
)

func Viscosity() Scene {
	return Scene{
		Name:        "viscosity",
		Title:       "Fluid & Viscosity Problem",
		Description: "title card for the viscosity problem set",
		Segments:    []Segment{{"intro", viscosityIntro}},
	}
}

func viscosityIntro(ctx context.Context, env *Env) error {
	title := env.title("Fluid & Viscosity Problem")
	by := stage.NewText(env.Config.Byline(), 60)
	stage.Arrange(stage.Down, 1, title, by)

	if err := env.Stage.Play(ctx, stage.Write(title, env.paced()...)); err != nil {
		return err
	}
	if err := env.Stage.Play(ctx, stage.Write(by, env.paced()...)); err != nil {
		return err
	}
	return env.Stage.Wait(ctx, 3)
}
