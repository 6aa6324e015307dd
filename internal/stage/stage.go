package stage

import (
	"context"
	"fmt"

	"github.com/san-kum/physdeck/internal/cue"
	"github.com/san-kum/physdeck/internal/texfmt"
)

type TransitionKind int

const (
	TransitionAnimate TransitionKind = iota
	TransitionHold
	TransitionWait
	TransitionClear
)

var transitionNames = [...]string{"animate", "hold", "wait", "clear"}

func (k TransitionKind) String() string {
	if int(k) < len(transitionNames) {
		return transitionNames[k]
	}
	return "unknown"
}

// Effect is one animation as seen by renderers: value copies only.
type Effect struct {
	Kind    AnimKind
	ID      int
	Into    Drawable
	Shift   Vec
	Path    []Vec
	RunTime float64
	Easing  Easing
}

// Transition is a published change to the stage.
type Transition struct {
	Kind    TransitionKind
	Seq     int
	Segment string
	Effects []Effect
	Before  []Drawable
	After   []Drawable
	RunTime float64
}

// Player presents transitions. Present may block until the transition has
// been shown.
type Player interface {
	Present(ctx context.Context, tr Transition) error
}

// Observer is notified of every transition before it is presented.
type Observer interface {
	Observe(tr Transition) error
}

type instant struct{}

func (instant) Present(ctx context.Context, _ Transition) error { return ctx.Err() }

// Instant presents nothing and never blocks.
var Instant Player = instant{}

type Option func(*Stage)

func WithPlayer(p Player) Option {
	return func(s *Stage) { s.player = p }
}

func WithObserver(o Observer) Option {
	return func(s *Stage) { s.observers = append(s.observers, o) }
}

// Stage is single-threaded: scenes drive it from one goroutine.
type Stage struct {
	shown     []*Drawable
	nextID    int
	seq       int
	segment   string
	player    Player
	observers []Observer
}

func New(opts ...Option) *Stage {
	s := &Stage{player: Instant}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stage) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// BeginSegment names the segment subsequent transitions belong to.
func (s *Stage) BeginSegment(name string) { s.segment = name }

func (s *Stage) Segment() string { return s.segment }

func (s *Stage) Len() int { return len(s.shown) }

// Contains reports whether d is currently on stage.
func (s *Stage) Contains(d *Drawable) bool { return s.index(d) >= 0 }

// Shown returns the live drawables in paint order. The slice is a copy;
// the drawables are not.
func (s *Stage) Shown() []*Drawable {
	return append([]*Drawable(nil), s.shown...)
}

// Snapshot returns copies of the shown drawables in paint order.
func (s *Stage) Snapshot() []Drawable {
	out := make([]Drawable, len(s.shown))
	for i, d := range s.shown {
		out[i] = *d
		out[i].track = nil
	}
	return out
}

func (s *Stage) index(d *Drawable) int {
	for i, x := range s.shown {
		if x == d {
			return i
		}
	}
	return -1
}

// Play runs anims together. Every animation is checked before any is
// applied, so a failing Play leaves the stage unchanged.
func (s *Stage) Play(ctx context.Context, anims ...Animation) error {
	if len(anims) == 0 {
		return nil
	}
	for _, a := range anims {
		if err := s.check(a); err != nil {
			return err
		}
	}

	before := s.Snapshot()
	runTime := 0.0
	effects := make([]Effect, 0, len(anims))
	for _, a := range anims {
		s.apply(a)
		e := Effect{
			Kind:    a.Kind,
			ID:      a.Target.ID,
			Shift:   a.Shift,
			Path:    append([]Vec(nil), a.Path...),
			RunTime: a.RunTime,
			Easing:  a.Easing,
		}
		if a.Into != nil {
			e.Into = *a.Into
		}
		effects = append(effects, e)
		runTime = max(runTime, a.RunTime)
	}
	s.follow()

	return s.emit(ctx, Transition{
		Kind:    TransitionAnimate,
		Effects: effects,
		Before:  before,
		After:   s.Snapshot(),
		RunTime: runTime,
	})
}

func (s *Stage) check(a Animation) error {
	if a.Target == nil {
		return fmt.Errorf("%s: %w", a.Kind, ErrNilDrawable)
	}
	if err := checkSource(a.Target); err != nil {
		return err
	}
	switch {
	case a.Kind == AnimTransform:
		if a.Into == nil {
			return fmt.Errorf("%s into: %w", a.Kind, ErrNilDrawable)
		}
		if err := checkSource(a.Into); err != nil {
			return err
		}
		if !s.Contains(a.Target) {
			return fmt.Errorf("%s %q: %w", a.Kind, a.Target.Content, ErrNotOnStage)
		}
	case a.Kind == AnimMove:
		if len(a.Path) == 0 {
			return fmt.Errorf("%s: %w", a.Kind, ErrEmptyPath)
		}
		if !s.Contains(a.Target) {
			return fmt.Errorf("%s: %w", a.Kind, ErrNotOnStage)
		}
	case a.Kind.Exit():
		if !s.Contains(a.Target) {
			return fmt.Errorf("%s %q: %w", a.Kind, a.Target.Content, ErrNotOnStage)
		}
	}
	return nil
}

func checkSource(d *Drawable) error {
	if d.Kind != KindTex && d.Kind != KindBrace {
		return nil
	}
	if err := texfmt.Validate(d.Content); err != nil {
		return &RenderError{Drawable: *d, Wrapped: err}
	}
	return nil
}

func (s *Stage) apply(a Animation) {
	d := a.Target
	switch {
	case a.Kind.Entrance():
		if d.ID == 0 {
			s.nextID++
			d.ID = s.nextID
		}
		d.Opacity, d.Reveal = 1, 1
		if !s.Contains(d) {
			s.shown = append(s.shown, d)
		}
	case a.Kind.Exit():
		s.remove(d)
	case a.Kind == AnimTransform:
		morph(d, a.Into)
	case a.Kind == AnimMove:
		MoveTo(d, a.Path[len(a.Path)-1])
	}
}

// follow snaps tracking lines to their targets.
func (s *Stage) follow() {
	for _, d := range s.shown {
		if d.track == nil || d.track.ID == 0 {
			continue
		}
		d.TrackID = d.track.ID
		d.To = d.track.Pos
		d.Pos = d.From.Lerp(d.To, 0.5)
	}
}

// morph copies everything but identity from src into dst.
func morph(dst, src *Drawable) {
	id, track := dst.ID, dst.track
	*dst = *src
	dst.ID = id
	if dst.track == nil {
		dst.track = track
	}
	dst.Opacity, dst.Reveal = 1, 1
}

func (s *Stage) remove(d *Drawable) {
	if i := s.index(d); i >= 0 {
		s.shown = append(s.shown[:i], s.shown[i+1:]...)
	}
}

// Hold publishes the current frame and blocks until sig advances.
func (s *Stage) Hold(ctx context.Context, sig cue.Signal) error {
	snap := s.Snapshot()
	if err := s.emit(ctx, Transition{Kind: TransitionHold, Before: snap, After: snap}); err != nil {
		return err
	}
	return sig.Await(ctx)
}

// Wait pauses for the given number of seconds. Whether time actually
// passes is up to the player.
func (s *Stage) Wait(ctx context.Context, seconds float64) error {
	snap := s.Snapshot()
	return s.emit(ctx, Transition{Kind: TransitionWait, Before: snap, After: snap, RunTime: seconds})
}

// Clear removes every drawable without animation.
func (s *Stage) Clear(ctx context.Context) error {
	before := s.Snapshot()
	s.shown = s.shown[:0]
	return s.emit(ctx, Transition{Kind: TransitionClear, Before: before, After: []Drawable{}})
}

func (s *Stage) emit(ctx context.Context, tr Transition) error {
	s.seq++
	tr.Seq = s.seq
	tr.Segment = s.segment
	for _, o := range s.observers {
		if err := o.Observe(tr); err != nil {
			return fmt.Errorf("observe %s #%d: %w", tr.Kind, tr.Seq, err)
		}
	}
	return s.player.Present(ctx, tr)
}
