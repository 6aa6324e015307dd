package stage

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/texfmt"
)

type recorder struct {
	transitions []Transition
}

func (r *recorder) Observe(tr Transition) error {
	r.transitions = append(r.transitions, tr)
	return nil
}

func TestPlayEntranceAssignsIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := NewText("title", 80)
	b := NewTex(`Q = 2`, 48)
	if err := s.Play(ctx, Write(a), FadeIn(b, Up)); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 drawables, got %d", s.Len())
	}
	if a.ID == 0 || b.ID == 0 || a.ID == b.ID {
		t.Errorf("expected distinct non-zero ids, got %d and %d", a.ID, b.ID)
	}

	// replaying an entrance does not duplicate
	if err := s.Play(ctx, Write(a)); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 drawables after replay, got %d", s.Len())
	}
}

func TestTransformPreservesIdentity(t *testing.T) {
	s := New()
	ctx := context.Background()

	shown := NewTex(`Q = 2`, 48)
	if err := s.Play(ctx, Write(shown)); err != nil {
		t.Fatal(err)
	}
	id := shown.ID

	next := NewTex(`Q = 1.4`, 60)
	MoveTo(next, Vec{1, 1})
	if err := s.Play(ctx, Transform(shown, next)); err != nil {
		t.Fatalf("transform failed: %v", err)
	}

	if shown.ID != id {
		t.Errorf("expected id %d to survive, got %d", id, shown.ID)
	}
	if shown.Content != `Q = 1.4` || shown.FontSize != 60 || shown.Pos != (Vec{1, 1}) {
		t.Errorf("expected morphed content and geometry, got %+v", *shown)
	}
	if next.ID != 0 || s.Contains(next) {
		t.Error("morph target must never be placed on stage")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 drawable, got %d", s.Len())
	}
}

func TestPlayErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		anim func(shown *Drawable) Animation
		want error
	}{
		{"transform off stage", func(_ *Drawable) Animation { return Transform(NewText("a", 0), NewText("b", 0)) }, ErrNotOnStage},
		{"fade out off stage", func(_ *Drawable) Animation { return FadeOut(NewText("a", 0), Down) }, ErrNotOnStage},
		{"move without path", func(d *Drawable) Animation { return MoveAlongPath(d, nil) }, ErrEmptyPath},
		{"nil target", func(_ *Drawable) Animation { return Write(nil) }, ErrNilDrawable},
		{"malformed tex", func(_ *Drawable) Animation { return Write(NewTex(`\frac{a}{b`, 0)) }, texfmt.ErrMalformed},
		{"malformed morph target", func(d *Drawable) Animation { return Transform(d, NewTex(`x^`, 0)) }, texfmt.ErrMalformed},
	}

	for _, tt := range tests {
		s := New()
		shown := NewText("shown", 0)
		if err := s.Play(ctx, Write(shown)); err != nil {
			t.Fatal(err)
		}

		good := NewText("good", 0)
		err := s.Play(ctx, Write(good), tt.anim(shown))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
		if s.Contains(good) {
			t.Errorf("%s: failed play must not change the stage", tt.name)
		}
	}
}

func TestRenderErrorCarriesDrawable(t *testing.T) {
	s := New()
	err := s.Play(context.Background(), Write(NewTex(`\frac{1}`, 0)))

	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected RenderError, got %v", err)
	}
	if re.Drawable.Content != `\frac{1}` {
		t.Errorf("unexpected drawable in error: %+v", re.Drawable)
	}
}

func TestExitAndClear(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, b, c := NewText("a", 0), NewText("b", 0), NewCircle(1, "#e92741")
	if err := s.Play(ctx, Write(a), Write(b), GrowFromCenter(c)); err != nil {
		t.Fatal(err)
	}
	if err := s.Play(ctx, FadeOut(a, Left), Uncreate(b)); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 || !s.Contains(c) {
		t.Fatalf("expected only the circle to remain, got %d", s.Len())
	}
	if shown := s.Shown(); len(shown) != 1 || shown[0] != c {
		t.Errorf("Shown() = %v", shown)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty stage, got %d", s.Len())
	}
}

func TestObserversSeeEveryTransition(t *testing.T) {
	rec := &recorder{}
	s := New(WithObserver(rec))
	ctx := context.Background()
	sig := &cue.Counting{}

	s.BeginSegment("intro")
	d := NewText("hello", 0)
	_ = s.Play(ctx, Write(d, RunTime(3)))
	_ = s.Hold(ctx, sig)
	_ = s.Wait(ctx, 2)
	_ = s.Clear(ctx)

	want := []TransitionKind{TransitionAnimate, TransitionHold, TransitionWait, TransitionClear}
	if len(rec.transitions) != len(want) {
		t.Fatalf("expected %d transitions, got %d", len(want), len(rec.transitions))
	}
	for i, tr := range rec.transitions {
		if tr.Kind != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], tr.Kind)
		}
		if tr.Seq != i+1 {
			t.Errorf("transition %d: expected seq %d, got %d", i, i+1, tr.Seq)
		}
		if tr.Segment != "intro" {
			t.Errorf("transition %d: expected segment intro, got %q", i, tr.Segment)
		}
	}
	if rec.transitions[0].RunTime != 3 {
		t.Errorf("expected run time 3, got %f", rec.transitions[0].RunTime)
	}
	if len(rec.transitions[1].After) != 1 {
		t.Errorf("hold should carry the visible frame")
	}
	if sig.Count() != 1 {
		t.Errorf("expected one await, got %d", sig.Count())
	}
}

type failingObserver struct{}

func (failingObserver) Observe(Transition) error { return errors.New("disk full") }

func TestObserverErrorAborts(t *testing.T) {
	s := New(WithObserver(failingObserver{}))
	if err := s.Play(context.Background(), Write(NewText("x", 0))); err == nil {
		t.Fatal("expected observer error")
	}
}

func TestInterpolate(t *testing.T) {
	rec := &recorder{}
	s := New(WithObserver(rec))
	ctx := context.Background()

	label := NewText("Insert", 0)
	gone := NewText("bye", 0)
	_ = s.Play(ctx, Write(label), Write(gone))

	into := NewText("Simplify", 0)
	MoveTo(into, Vec{0, 2})
	_ = s.Play(ctx, Transform(label, into, WithEasing(Linear)), FadeOut(gone, Down, WithEasing(Linear)))
	tr := rec.transitions[1]

	start := Interpolate(tr, 0)
	if len(start) != 2 {
		t.Fatalf("expected both drawables at start, got %d", len(start))
	}
	if start[0].Content != "Insert" || start[1].Opacity != 1 {
		t.Errorf("unexpected start frame: %+v", start)
	}

	mid := Interpolate(tr, 0.5)
	if mid[0].Pos != (Vec{0, 1}) {
		t.Errorf("expected morph halfway at (0,1), got %+v", mid[0].Pos)
	}
	if mid[0].Content != "Simplify" {
		t.Errorf("expected content to swap at midpoint, got %q", mid[0].Content)
	}
	if math.Abs(mid[1].Pos.Y-(gone.Pos.Y-0.5)) > 1e-9 || mid[1].Opacity != 0.5 {
		t.Errorf("unexpected fade-out frame: %+v", mid[1])
	}

	end := Interpolate(tr, 1)
	if end[0].ID != label.ID || end[1].Opacity != 0 {
		t.Errorf("unexpected end frame: %+v", end)
	}
}

func TestInterpolateWriteAndMove(t *testing.T) {
	rec := &recorder{}
	s := New(WithObserver(rec))
	ctx := context.Background()

	dot := NewDot()
	_ = s.Play(ctx, Create(dot, WithEasing(Linear)))
	if got := Interpolate(rec.transitions[0], 0.25); got[0].Reveal != 0.25 {
		t.Errorf("expected reveal 0.25, got %f", got[0].Reveal)
	}

	path := []Vec{{0, 0}, {2, 0}, {2, 2}}
	_ = s.Play(ctx, MoveAlongPath(dot, path, WithEasing(Linear)))
	got := Interpolate(rec.transitions[1], 0.75)
	if math.Abs(got[0].Pos.X-2) > 1e-9 || math.Abs(got[0].Pos.Y-1) > 1e-9 {
		t.Errorf("expected (2,1) at 75%%, got %+v", got[0].Pos)
	}
	if dot.Pos != (Vec{2, 2}) {
		t.Errorf("expected dot to end on last waypoint, got %+v", dot.Pos)
	}
}

func TestTrackingLineFollowsTarget(t *testing.T) {
	rec := &recorder{}
	s := New(WithObserver(rec))
	ctx := context.Background()

	center := NewDot()
	point := NewDot()
	line := Track(NewLine(center.Pos, point.Pos), point)
	if err := s.Play(ctx, FadeIn(center, Origin), FadeIn(point, Origin), FadeIn(line, Origin)); err != nil {
		t.Fatal(err)
	}

	if err := s.Play(ctx, MoveToAnim(point, Vec{2, 0}, WithEasing(Linear))); err != nil {
		t.Fatal(err)
	}
	if line.To != (Vec{2, 0}) {
		t.Errorf("expected line end on point, got %v", line.To)
	}

	frame := Interpolate(rec.transitions[1], 0.5)
	for _, d := range frame {
		if d.ID == line.ID && d.To != (Vec{1, 0}) {
			t.Errorf("expected line end at (1,0) mid-move, got %v", d.To)
		}
	}
}
