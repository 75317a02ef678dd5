// Package scheduler runs the cooperative foreground loop that keeps the
// heartbeat LED and the matrix up to date.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/digit-matrix/internal/logic"
)

// DefaultYield is the pause at the end of every iteration.
const DefaultYield = 10 * time.Millisecond

// DigitSource provides the digit to display. Digit must be safe to call
// while button edges are being handled.
type DigitSource interface {
	Digit() int
}

// StatusPin is the heartbeat LED.
type StatusPin interface {
	Set(level bool) error
}

// Renderer shows a digit on the matrix.
type Renderer interface {
	Render(digit int) error
}

// Observer is notified of what each iteration did. Calls happen on the loop
// goroutine.
type Observer interface {
	HeartbeatToggled(level bool)
	FrameRendered(digit int)
	StepFailed(err error)
}

// Loop ties the heartbeat and the renderer together.
type Loop struct {
	digits    DigitSource
	heartbeat *logic.Heartbeat
	pin       StatusPin
	renderer  Renderer
	observer  Observer
	yield     time.Duration
}

// Option configures a Loop.
type Option func(*Loop)

// WithYield sets the pause between iterations.
func WithYield(d time.Duration) Option {
	return func(l *Loop) { l.yield = d }
}

// WithObserver sets an observer for loop activity.
func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observer = o }
}

// New creates a Loop.
func New(digits DigitSource, hb *logic.Heartbeat, pin StatusPin, r Renderer, opts ...Option) *Loop {
	l := &Loop{
		digits:    digits,
		heartbeat: hb,
		pin:       pin,
		renderer:  r,
		yield:     DefaultYield,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Yield returns the pause between iterations.
func (l *Loop) Yield() time.Duration {
	return l.yield
}

// Step runs one iteration at time now: heartbeat check, then a full render
// of the current digit. A status pin failure does not skip the render, and
// the toggle is retried on the next step.
func (l *Loop) Step(now time.Duration) error {
	var errs []error

	if toggled, level := l.heartbeat.Tick(now); toggled {
		if err := l.pin.Set(level); err != nil {
			l.heartbeat.Undo()
			errs = append(errs, fmt.Errorf("status pin: %w", err))
		} else if l.observer != nil {
			l.observer.HeartbeatToggled(level)
		}
	}

	// Read once; later edges show up on the next iteration.
	digit := l.digits.Digit()
	if err := l.renderer.Render(digit); err != nil {
		errs = append(errs, fmt.Errorf("render: %w", err))
	} else if l.observer != nil {
		l.observer.FrameRendered(digit)
	}

	return errors.Join(errs...)
}

// Run calls Step with clock() every iteration until ctx is done. Step errors
// go to the observer and never stop the loop.
func (l *Loop) Run(ctx context.Context, clock func() time.Duration) error {
	timer := time.NewTimer(l.yield)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for ctx.Err() == nil {
		if err := l.Step(clock()); err != nil && l.observer != nil {
			l.observer.StepFailed(err)
		}

		timer.Reset(l.yield)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
	return nil
}
