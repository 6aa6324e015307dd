package viz

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/physdeck/internal/stage"
)

// ConsolePlayer prints the settled frame at every hold and wait. With
// Realtime set it also sleeps through animations and waits.
type ConsolePlayer struct {
	Out           io.Writer
	Width, Height int
	Theme         Theme
	Realtime      bool
}

func NewConsolePlayer(out io.Writer, theme Theme) *ConsolePlayer {
	return &ConsolePlayer{Out: out, Width: 80, Height: 22, Theme: theme}
}

func (p *ConsolePlayer) Present(ctx context.Context, tr stage.Transition) error {
	switch tr.Kind {
	case stage.TransitionHold:
		p.print(tr, "enter to continue")
	case stage.TransitionWait:
		p.print(tr, fmt.Sprintf("%.1fs", tr.RunTime))
		return p.sleep(ctx, tr.RunTime)
	case stage.TransitionAnimate:
		return p.sleep(ctx, tr.RunTime)
	}
	return ctx.Err()
}

func (p *ConsolePlayer) print(tr stage.Transition, hint string) {
	fmt.Fprintln(p.Out, Render(tr.After, p.Width, p.Height, p.Theme))
	fmt.Fprintf(p.Out, "%s %s\n", Dim.Render(fmt.Sprintf("%s #%d", tr.Segment, tr.Seq)), KeyHint.Render(hint))
}

func (p *ConsolePlayer) sleep(ctx context.Context, seconds float64) error {
	if !p.Realtime || seconds <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
