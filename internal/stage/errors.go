package stage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOnStage indicates an exit, move or morph of a drawable that is not shown.
	ErrNotOnStage = errors.New("stage: drawable is not on stage")

	// ErrNilDrawable indicates an animation without a target.
	ErrNilDrawable = errors.New("stage: nil drawable")

	// ErrEmptyPath indicates a move with no waypoints.
	ErrEmptyPath = errors.New("stage: move needs at least one waypoint")
)

// RenderError reports a drawable the stage could not render.
type RenderError struct {
	Drawable Drawable
	Wrapped  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("stage: render %s %q: %v", e.Drawable.Kind, e.Drawable.Content, e.Wrapped)
}

func (e *RenderError) Unwrap() error {
	return e.Wrapped
}
