package touch

import (
	"time"
)

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	// Stop prevents the callback from running if it has not started. It
	// reports whether the call stopped the timer.
	Stop() bool
}

// Clock is the time source of the controllers. Callbacks scheduled with
// AfterFunc must run on the goroutine that delivers pointer events; see
// LoopClock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock runs callbacks on their own goroutines. It is only safe for
// callers that serialize the callbacks themselves.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// loopClock hands each fired callback to post, which queues it on the event
// loop.
type loopClock struct {
	base Clock
	post func(func())
}

// LoopClock wraps base so that timer callbacks are delivered through post.
// The demo passes a function that wraps the callback in a tcell interrupt
// event, so timers fire on the same goroutine as mouse events.
func LoopClock(base Clock, post func(func())) Clock {
	return loopClock{base: base, post: post}
}

func (c loopClock) Now() time.Time { return c.base.Now() }

func (c loopClock) AfterFunc(d time.Duration, f func()) Timer {
	return c.base.AfterFunc(d, func() { c.post(f) })
}
