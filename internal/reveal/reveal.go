// Package reveal presents an algebraic derivation one step at a time.
//
// The displayed label/expression pair is created once and then morphed
// into each following step, so the audience sees one continuous object
// rewrite itself. Advancing is entirely up to the injected [cue.Signal].
package reveal

import (
	"context"
	"fmt"

	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/stage"
)

// Step is one line of a derivation. Steps are always passed as an ordered
// slice; the slice order is the playback order.
type Step struct {
	Label string
	Expr  string // TeX
}

// Canvas is the part of the stage the sequencer needs.
type Canvas interface {
	Play(ctx context.Context, anims ...stage.Animation) error
	Hold(ctx context.Context, sig cue.Signal) error
}

// Layout controls how a step is drawn: the expression sits Gap units above
// the label.
type Layout struct {
	LabelSize float64
	ExprSize  float64
	Gap       float64
	RunTime   float64
	Easing    stage.Easing
}

func DefaultLayout() Layout {
	return Layout{LabelSize: 30, ExprSize: 50, Gap: 1, RunTime: 3, Easing: stage.Smooth}
}

// Showing is the state of a sequencer. Index is -1 while idle.
type Showing struct {
	Index int
	Label *stage.Drawable
	Expr  *stage.Drawable
}

func (s Showing) Idle() bool { return s.Index < 0 }

type Sequencer struct {
	canvas Canvas
	signal cue.Signal
	layout Layout
	state  Showing
}

func New(canvas Canvas, signal cue.Signal, layout Layout) *Sequencer {
	return &Sequencer{canvas: canvas, signal: signal, layout: layout, state: Showing{Index: -1}}
}

// State returns the step displayed by the latest Present.
func (s *Sequencer) State() Showing { return s.state }

// Present shows steps in order, suspending on the signal after each one.
// The final step stays on the canvas. Every call starts from idle, so the
// caller may clear the canvas between calls.
func (s *Sequencer) Present(ctx context.Context, steps []Step) error {
	s.state = Showing{Index: -1}
	for i, step := range steps {
		label, expr := s.draw(step)

		var err error
		if s.state.Idle() {
			err = s.canvas.Play(ctx,
				stage.Write(expr, stage.RunTime(s.layout.RunTime), stage.WithEasing(s.layout.Easing)),
				stage.FadeIn(label, stage.Up),
			)
			if err == nil {
				s.state = Showing{Index: i, Label: label, Expr: expr}
			}
		} else {
			err = s.canvas.Play(ctx,
				stage.Transform(s.state.Expr, expr),
				stage.Transform(s.state.Label, label),
			)
			if err == nil {
				s.state.Index = i
			}
		}
		if err != nil {
			return fmt.Errorf("step %d %q: %w", i, step.Label, err)
		}

		if err := s.canvas.Hold(ctx, s.signal); err != nil {
			return fmt.Errorf("step %d %q: advance: %w", i, step.Label, err)
		}
	}
	return nil
}

func (s *Sequencer) draw(step Step) (label, expr *stage.Drawable) {
	label = stage.NewText(step.Label, s.layout.LabelSize)
	expr = stage.NewTex(step.Expr, s.layout.ExprSize)
	stage.Arrange(stage.Down, s.layout.Gap, expr, label)
	return label, expr
}
