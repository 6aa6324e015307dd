// Package cue provides the presenter's advance signals: the blocking
// points at which a lecture waits for the operator before moving on.
package cue

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by Channel when its source is closed.
var ErrClosed = errors.New("cue: advance channel closed")

// Signal blocks until the operator advances or ctx is done.
type Signal interface {
	Await(ctx context.Context) error
}

// SignalFunc adapts a function to Signal.
type SignalFunc func(ctx context.Context) error

func (f SignalFunc) Await(ctx context.Context) error { return f(ctx) }

// Immediate advances at once. Used for export runs and tests.
var Immediate Signal = SignalFunc(func(ctx context.Context) error {
	return ctx.Err()
})

// Timer advances after d has passed.
func Timer(d time.Duration) Signal {
	return SignalFunc(func(ctx context.Context) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// First advances as soon as any of sigs does and stops waiting on the rest.
func First(sigs ...Signal) Signal {
	return SignalFunc(func(ctx context.Context) error {
		if len(sigs) == 0 {
			return ctx.Err()
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		results := make(chan error, len(sigs))
		for _, s := range sigs {
			go func() { results <- s.Await(ctx) }()
		}
		return <-results
	})
}

// Console advances when a line is read, like pressing enter in a terminal.
type Console struct {
	lines chan error
	r     *bufio.Reader
}

func NewConsole(r io.Reader) *Console {
	return &Console{r: bufio.NewReader(r)}
}

// Await reads one line. The read itself cannot be interrupted; when ctx is
// done first the pending line is consumed by the next Await.
func (c *Console) Await(ctx context.Context) error {
	if c.lines == nil {
		c.lines = make(chan error, 1)
		go c.read()
	}
	select {
	case err := <-c.lines:
		if err == nil {
			go c.read()
		} else {
			c.lines <- err
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Console) read() {
	_, err := c.r.ReadString('\n')
	c.lines <- err
}

// Channel advances on every receive from ch.
type Channel <-chan struct{}

func (c Channel) Await(ctx context.Context) error {
	select {
	case _, ok := <-c:
		if !ok {
			return ErrClosed
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Counting wraps a Signal and records how many times it was awaited.
type Counting struct {
	Signal Signal
	n      atomic.Int64
}

func (c *Counting) Await(ctx context.Context) error {
	c.n.Add(1)
	if c.Signal == nil {
		return Immediate.Await(ctx)
	}
	return c.Signal.Await(ctx)
}

func (c *Counting) Count() int { return int(c.n.Load()) }
