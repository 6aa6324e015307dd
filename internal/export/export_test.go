package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/san-kum/physdeck/internal/config"
	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/scenes"
	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/viz"
)

func TestFrameToSVG(t *testing.T) {
	title := stage.NewText("Fluid & Viscosity Problem", 80)
	circle := stage.NewCircle(1.6, "#e92741")
	line := stage.NewLine(stage.Origin, stage.Vec{X: 1.6})
	brace := stage.NewBrace(circle, `\vec{B} \text{ } \otimes`)
	hidden := stage.NewText("hidden", 0)
	hidden.Opacity = 0

	svg := FrameToSVG([]stage.Drawable{*title, *circle, *line, *brace, *hidden}, viz.ThemePaper, "CMU Serif", 0)

	for _, want := range []string{
		`width="1422" height="800"`,
		`fill="#ffffff"`,
		"Fluid &amp; Viscosity Problem",
		`stroke="#e92741"`,
		"<line ",
		"⊗",
		`font-family="CMU Serif"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(svg, "hidden") {
		t.Error("transparent drawable exported")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]stage.Vec{{X: 1}}, 100, 100, "#fff") != "" {
		t.Error("single point should produce nothing")
	}
	svg := TrajectoryToSVG([]stage.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, 200, 100, "#e92741")
	if !strings.Contains(svg, `stroke="#e92741"`) || strings.Count(svg, " L") != 2 {
		t.Errorf("unexpected path:\n%s", svg)
	}
}

func TestSVGExporterWritesHolds(t *testing.T) {
	tests := []struct {
		scene string
		files int
	}{
		{"poiseuille", 12},
		{"viscosity", 1},
		{"magnetic", 3},
	}

	for _, tt := range tests {
		t.Run(tt.scene, func(t *testing.T) {
			dir := t.TempDir()
			cfg := config.DefaultConfig()
			exp, err := NewSVGExporter(filepath.Join(dir, "out"), viz.GetTheme(cfg.Theme), cfg.Font)
			if err != nil {
				t.Fatal(err)
			}

			s, err := scenes.NewRegistry().Get(tt.scene)
			if err != nil {
				t.Fatal(err)
			}
			env, err := scenes.NewEnv(stage.New(stage.WithObserver(exp)), cue.Immediate, cfg, log.New(io.Discard))
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Run(context.Background(), env); err != nil {
				t.Fatal(err)
			}

			if len(exp.Files()) != tt.files {
				t.Fatalf("wrote %d files, want %d", len(exp.Files()), tt.files)
			}
			data, err := os.ReadFile(exp.Files()[0])
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(string(data), "<?xml") {
				t.Error("not an svg file")
			}
			if !strings.HasPrefix(filepath.Base(exp.Files()[0]), "001_intro") {
				t.Errorf("unexpected name %s", exp.Files()[0])
			}
		})
	}
}
