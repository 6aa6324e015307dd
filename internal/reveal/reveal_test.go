package reveal_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/reveal"
	"github.com/san-kum/physdeck/internal/stage"
	"github.com/san-kum/physdeck/internal/texfmt"
)

type frame struct {
	drawables []stage.Drawable
}

type transitions struct {
	all []stage.Transition
}

func (t *transitions) Observe(tr stage.Transition) error {
	t.all = append(t.all, tr)
	return nil
}

func (t *transitions) effects(kind stage.AnimKind) int {
	n := 0
	for _, tr := range t.all {
		for _, e := range tr.Effects {
			if e.Kind == kind {
				n++
			}
		}
	}
	return n
}

var _ = Describe("Sequencer", func() {
	var (
		ctx    context.Context
		st     *stage.Stage
		seen   *transitions
		frames []frame
		signal cue.Signal
		seq    *reveal.Sequencer
	)

	BeforeEach(func() {
		ctx = context.Background()
		seen = &transitions{}
		st = stage.New(stage.WithObserver(seen))
		frames = nil
		signal = cue.SignalFunc(func(ctx context.Context) error {
			frames = append(frames, frame{drawables: st.Snapshot()})
			return nil
		})
		seq = reveal.New(st, signal, reveal.DefaultLayout())
	})

	Context("with no steps", func() {
		It("creates nothing and never suspends", func() {
			Expect(seq.Present(ctx, nil)).To(Succeed())
			Expect(st.Len()).To(BeZero())
			Expect(frames).To(BeEmpty())
			Expect(seen.all).To(BeEmpty())
			Expect(seq.State().Idle()).To(BeTrue())
		})
	})

	Context("with the insert/simplify derivation", func() {
		steps := []reveal.Step{
			{Label: "Insert", Expr: "Q = 2"},
			{Label: "Simplify", Expr: "Q = 1.4"},
		}

		It("suspends once per step with exactly one pair on stage", func() {
			Expect(seq.Present(ctx, steps)).To(Succeed())
			Expect(frames).To(HaveLen(2))

			Expect(frames[0].drawables).To(HaveLen(2))
			Expect(contents(frames[0])).To(ConsistOf("Insert", "Q = 2"))

			Expect(frames[1].drawables).To(HaveLen(2))
			Expect(contents(frames[1])).To(ConsistOf("Simplify", "Q = 1.4"))
		})

		It("morphs the displayed pair instead of replacing it", func() {
			Expect(seq.Present(ctx, steps)).To(Succeed())

			Expect(ids(frames[1])).To(Equal(ids(frames[0])))
			Expect(seen.effects(stage.AnimTransform)).To(Equal(2))
			Expect(seen.effects(stage.AnimFadeOut) + seen.effects(stage.AnimUncreate)).To(BeZero())
		})

		It("ends showing the last step without an exit", func() {
			Expect(seq.Present(ctx, steps)).To(Succeed())

			state := seq.State()
			Expect(state.Index).To(Equal(1))
			Expect(state.Label.Content).To(Equal("Simplify"))
			Expect(st.Contains(state.Label)).To(BeTrue())
			Expect(st.Contains(state.Expr)).To(BeTrue())
			Expect(st.Len()).To(Equal(2))
		})

		It("lays the expression out above the label", func() {
			Expect(seq.Present(ctx, steps)).To(Succeed())

			state := seq.State()
			Expect(state.Expr.Pos.Y).To(BeNumerically(">", state.Label.Pos.Y))
		})

		It("starts over with an entrance after the caller clears the stage", func() {
			Expect(seq.Present(ctx, steps)).To(Succeed())
			Expect(st.Clear(ctx)).To(Succeed())
			seen.all = nil
			frames = nil

			Expect(seq.Present(ctx, steps[:1])).To(Succeed())
			Expect(seen.effects(stage.AnimWrite)).To(Equal(1))
			Expect(seen.effects(stage.AnimFadeIn)).To(Equal(1))
			Expect(seen.effects(stage.AnimTransform)).To(BeZero())
			Expect(frames).To(HaveLen(1))
			Expect(contents(frames[0])).To(ConsistOf("Insert", "Q = 2"))
			Expect(seq.State().Index).To(Equal(0))
		})
	})

	Context("with a single step", func() {
		It("plays only the entrance", func() {
			Expect(seq.Present(ctx, []reveal.Step{{Label: "Final Answer", Expr: `Q \approxeq 1.396`}})).To(Succeed())

			Expect(frames).To(HaveLen(1))
			Expect(seen.effects(stage.AnimTransform)).To(BeZero())
			Expect(seen.effects(stage.AnimWrite)).To(Equal(1))
			Expect(seen.effects(stage.AnimFadeIn)).To(Equal(1))
		})
	})

	Context("with a long derivation", func() {
		It("never accumulates drawables", func() {
			steps := make([]reveal.Step, 0, 6)
			for _, e := range []string{"a", "b", "c", "d", "e", "f"} {
				steps = append(steps, reveal.Step{Label: "step " + e, Expr: e + " = 1"})
			}
			counting := &cue.Counting{Signal: signal}
			seq = reveal.New(st, counting, reveal.DefaultLayout())

			Expect(seq.Present(ctx, steps)).To(Succeed())
			Expect(counting.Count()).To(Equal(len(steps)))
			for _, f := range frames {
				Expect(f.drawables).To(HaveLen(2))
			}
		})

		It("plays steps in declared order", func() {
			steps := []reveal.Step{
				{Label: "Combine Like Terms (Top)", Expr: "1"},
				{Label: "Combine Like Terms (Bottom)", Expr: "2"},
				{Label: "Combine Like Terms", Expr: "3"},
			}
			Expect(seq.Present(ctx, steps)).To(Succeed())

			order := make([]string, 0, len(frames))
			for _, f := range frames {
				for _, d := range f.drawables {
					if d.Kind == stage.KindText {
						order = append(order, d.Content)
					}
				}
			}
			Expect(order).To(Equal([]string{
				"Combine Like Terms (Top)",
				"Combine Like Terms (Bottom)",
				"Combine Like Terms",
			}))
		})
	})

	Context("when the stage rejects a step", func() {
		It("surfaces the render error and stops", func() {
			steps := []reveal.Step{
				{Label: "Insert", Expr: "Q = 2"},
				{Label: "Broken", Expr: `Q = \frac{1}{`},
				{Label: "Never", Expr: "Q = 3"},
			}
			err := seq.Present(ctx, steps)

			Expect(err).To(MatchError(texfmt.ErrMalformed))
			var re *stage.RenderError
			Expect(errors.As(err, &re)).To(BeTrue())
			Expect(frames).To(HaveLen(1))
			Expect(seq.State().Index).To(Equal(0))
		})
	})

	Context("when the advance signal fails", func() {
		It("returns the signal error", func() {
			stop := errors.New("operator left")
			seq = reveal.New(st, cue.SignalFunc(func(context.Context) error { return stop }), reveal.DefaultLayout())

			err := seq.Present(ctx, []reveal.Step{{Label: "a", Expr: "1"}, {Label: "b", Expr: "2"}})
			Expect(err).To(MatchError(stop))
			Expect(seq.State().Index).To(Equal(0))
		})
	})
})

func contents(f frame) []string {
	out := make([]string, len(f.drawables))
	for i, d := range f.drawables {
		out[i] = d.Content
	}
	return out
}

func ids(f frame) []int {
	out := make([]int, len(f.drawables))
	for i, d := range f.drawables {
		out[i] = d.ID
	}
	return out
}
