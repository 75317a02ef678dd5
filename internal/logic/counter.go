package logic

import (
	"sync/atomic"
	"time"
)

// Counter is the debounced, clamped digit selected by the two buttons.
//
// OnEdge must only be called from a single callback context (one goroutine,
// or interrupt handlers that cannot nest). Digit may be called from anywhere:
// it is a single atomic load and never blocks the writer.
type Counter struct {
	window time.Duration
	digit  atomic.Int32
	gates  [2]gateState
}

// NewCounter creates a counter at MinDigit that ignores repeated edges of the
// same button arriving within window of the last accepted one.
func NewCounter(window time.Duration) *Counter {
	return &Counter{window: window}
}

// Window returns the refractory window.
func (c *Counter) Window() time.Duration {
	return c.window
}

// Digit returns the most recently committed digit.
func (c *Counter) Digit() int {
	return int(c.digit.Load())
}

// OnEdge handles a falling edge ("pressed") of button b observed at now.
// It returns true if the edge passed the debounce gate. An accepted edge
// always refreshes the button's timestamp, even when the digit is already at
// its bound and does not change.
func (c *Counter) OnEdge(b Button, now time.Duration) bool {
	if !b.Valid() {
		return false
	}

	g := &c.gates[b]
	if g.accepted && now-g.lastAccepted < c.window {
		return false
	}

	d := c.digit.Load()
	switch b {
	case ButtonIncrement:
		if d < MaxDigit {
			d++
		}
	case ButtonDecrement:
		if d > MinDigit {
			d--
		}
	}
	c.digit.Store(d)

	g.lastAccepted = now
	g.accepted = true
	return true
}
