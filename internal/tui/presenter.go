package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physdeck/internal/stage"
)

// transitionMsg hands a transition to the UI goroutine. The UI closes done
// once the transition has been shown.
type transitionMsg struct {
	tr   stage.Transition
	done chan struct{}
}

// Presenter is the stage.Player of a scene running under the TUI. Present
// blocks the scene goroutine until the animation has finished on screen.
type Presenter struct {
	send func(tea.Msg)
}

func (p *Presenter) Present(ctx context.Context, tr stage.Transition) error {
	done := make(chan struct{})
	p.send(transitionMsg{tr: tr, done: done})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
