package viz

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/stage"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func TestRenderDimensions(t *testing.T) {
	out := plain(Render(nil, 40, 10, ThemeChalk))
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 40 {
			t.Errorf("row %d has %d cells", i, n)
		}
	}
}

func TestRenderText(t *testing.T) {
	d := stage.NewTex(`Q = \frac{\pi r^4 \Delta P}{8 \eta L}`, 0)
	out := plain(Render([]stage.Drawable{*d}, 80, 20, ThemeChalk))
	if !strings.Contains(out, d.Display()) {
		t.Errorf("formula missing from frame:\n%s", out)
	}
}

func TestRenderReveal(t *testing.T) {
	d := *stage.NewText("abcdefgh", 0)
	d.Reveal = 0.5
	out := plain(Render([]stage.Drawable{d}, 40, 5, ThemeChalk))
	if !strings.Contains(out, "abcd") || strings.Contains(out, "abcde") {
		t.Errorf("expected half the text:\n%s", out)
	}
}

func TestRenderSkipsInvisible(t *testing.T) {
	d := *stage.NewText("ghost", 0)
	d.Opacity = 0
	if out := plain(Render([]stage.Drawable{d}, 40, 5, ThemeChalk)); strings.Contains(out, "ghost") {
		t.Error("invisible drawable was drawn")
	}
}

func TestRenderShapesUseBraille(t *testing.T) {
	circle := *stage.NewCircle(2, "#e92741")
	line := *stage.NewLine(stage.Origin, stage.Vec{X: 3, Y: 1})
	dot := *stage.NewDot()

	for _, d := range []stage.Drawable{circle, line, dot} {
		out := plain(Render([]stage.Drawable{d}, 60, 20, ThemeChalk))
		found := false
		for _, r := range out {
			if r > brailleBlank && r <= 0x28ff {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("%s: no braille dots drawn", d.Kind)
		}
	}
}

func TestRenderBraceLabel(t *testing.T) {
	c := stage.NewCircle(1.6, "")
	b := stage.NewBrace(c, `\vec{B} \text{ } \otimes`)
	out := plain(Render([]stage.Drawable{*c, *b}, 80, 24, ThemeChalk))
	if !strings.Contains(out, "⊗") {
		t.Errorf("brace label missing:\n%s", out)
	}
}

func TestCells(t *testing.T) {
	got := cells("B⃗ x")
	if len(got) != 3 || got[0] != "B⃗" {
		t.Errorf("cells = %q", got)
	}
}

func TestCanvasPolylineFraction(t *testing.T) {
	full := NewCanvas(20, 2)
	full.Polyline([]dot{{0, 0}, {39, 0}}, 1, "")
	half := NewCanvas(20, 2)
	half.Polyline([]dot{{0, 0}, {39, 0}}, 0.5, "")

	if full.Blank(19, 0) {
		t.Error("full line should reach the last cell")
	}
	if !half.Blank(19, 0) || half.Blank(0, 0) {
		t.Error("half line should stop midway")
	}
}

func TestGetThemeFallback(t *testing.T) {
	if GetTheme("paper").Name != "paper" {
		t.Error("paper theme not found")
	}
	if GetTheme("nope").Name != "chalk" {
		t.Error("unknown theme should fall back to chalk")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestConsolePlayerPrintsHolds(t *testing.T) {
	var buf bytes.Buffer
	p := NewConsolePlayer(&buf, ThemePaper)
	s := stage.New(stage.WithPlayer(p))
	s.BeginSegment("intro")

	ctx := context.Background()
	title := stage.NewText("Poiseuille's Law", 80)
	if err := s.Play(ctx, stage.Write(title)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Error("animations should not print")
	}
	if err := s.Hold(ctx, cue.Immediate); err != nil {
		t.Fatal(err)
	}
	out := plain(buf.String())
	if !strings.Contains(out, "Poiseuille's Law") || !strings.Contains(out, "intro #2") {
		t.Errorf("unexpected hold output:\n%s", out)
	}
}

func TestConsolePlayerRealtimeCancels(t *testing.T) {
	p := NewConsolePlayer(&bytes.Buffer{}, ThemeChalk)
	p.Realtime = true
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Present(ctx, stage.Transition{Kind: stage.TransitionAnimate, RunTime: 60})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
