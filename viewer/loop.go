package viewer

import (
	"context"
	"time"
)

// Frame is drawn once per tick.
type Frame interface {
	Update(now time.Time)
	Render()
}

// Loop runs posted events and frames on a single goroutine.
type Loop struct {
	ch   chan func()
	done chan struct{}
}

func NewLoop(buffer int) *Loop {
	return &Loop{
		ch:   make(chan func(), buffer),
		done: make(chan struct{}),
	}
}

// Post queues f to be run on the loop goroutine.
// It returns false if the loop has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.ch <- f:
		return true
	case <-l.done:
		return false
	}
}

// Wait runs f on the loop goroutine and blocks until it returns.
// It returns false if the loop has stopped before f ran.
func (l *Loop) Wait(f func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		f()
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.done:
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// Run processes events until ctx is canceled.
// Each tick runs exactly one Update followed by one Render.
func (l *Loop) Run(ctx context.Context, ticks <-chan time.Time, f Frame) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.ch:
			fn()
		case now := <-ticks:
			f.Update(now)
			f.Render()
		}
	}
}
