package stage

type AnimKind int

const (
	AnimWrite AnimKind = iota
	AnimCreate
	AnimGrow
	AnimFadeIn
	AnimFadeOut
	AnimUncreate
	AnimTransform
	AnimMove
)

var animNames = [...]string{"write", "create", "grow", "fade-in", "fade-out", "uncreate", "transform", "move"}

func (k AnimKind) String() string {
	if int(k) < len(animNames) {
		return animNames[k]
	}
	return "unknown"
}

// Entrance reports whether the animation puts its target on stage.
func (k AnimKind) Entrance() bool {
	return k == AnimWrite || k == AnimCreate || k == AnimGrow || k == AnimFadeIn
}

// Exit reports whether the animation takes its target off stage.
func (k AnimKind) Exit() bool {
	return k == AnimFadeOut || k == AnimUncreate
}

// DefaultRunTime is the duration in seconds of an animation without RunTime.
const DefaultRunTime = 1.0

type Animation struct {
	Kind    AnimKind
	Target  *Drawable
	Into    *Drawable // morph target for AnimTransform
	Shift   Vec       // fade direction
	Path    []Vec     // waypoints for AnimMove
	RunTime float64
	Easing  Easing
}

type AnimOption func(*Animation)

func RunTime(seconds float64) AnimOption {
	return func(a *Animation) { a.RunTime = seconds }
}

func WithEasing(e Easing) AnimOption {
	return func(a *Animation) { a.Easing = e }
}

func newAnimation(kind AnimKind, d *Drawable, opts []AnimOption) Animation {
	a := Animation{Kind: kind, Target: d, RunTime: DefaultRunTime, Easing: Smooth}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Write reveals d stroke by stroke.
func Write(d *Drawable, opts ...AnimOption) Animation {
	return newAnimation(AnimWrite, d, opts)
}

// Create draws the outline of d.
func Create(d *Drawable, opts ...AnimOption) Animation {
	return newAnimation(AnimCreate, d, opts)
}

// GrowFromCenter scales d up from nothing.
func GrowFromCenter(d *Drawable, opts ...AnimOption) Animation {
	return newAnimation(AnimGrow, d, opts)
}

// FadeIn fades d in while it travels along shift to its position.
func FadeIn(d *Drawable, shift Vec, opts ...AnimOption) Animation {
	a := newAnimation(AnimFadeIn, d, opts)
	a.Shift = shift
	return a
}

// FadeOut fades d out while it travels along shift.
func FadeOut(d *Drawable, shift Vec, opts ...AnimOption) Animation {
	a := newAnimation(AnimFadeOut, d, opts)
	a.Shift = shift
	return a
}

// Uncreate erases d in reverse drawing order.
func Uncreate(d *Drawable, opts ...AnimOption) Animation {
	return newAnimation(AnimUncreate, d, opts)
}

// Transform morphs the on-stage drawable d into the shape and content of
// into. into itself is never placed on stage.
func Transform(d, into *Drawable, opts ...AnimOption) Animation {
	a := newAnimation(AnimTransform, d, opts)
	a.Into = into
	return a
}

// MoveAlongPath moves d through the waypoints in path, ending on the last.
func MoveAlongPath(d *Drawable, path []Vec, opts ...AnimOption) Animation {
	a := newAnimation(AnimMove, d, opts)
	a.Path = path
	return a
}

// MoveToAnim slides d to p.
func MoveToAnim(d *Drawable, p Vec, opts ...AnimOption) Animation {
	return MoveAlongPath(d, []Vec{p}, opts...)
}
