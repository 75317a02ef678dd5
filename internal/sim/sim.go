// Package sim runs the digit matrix against in-memory hardware so it can be
// driven from a desktop window or a test.
package sim

import (
	"sync/atomic"
	"time"

	"github.com/sweeney/digit-matrix/internal/glyph"
	"github.com/sweeney/digit-matrix/internal/gpio"
	"github.com/sweeney/digit-matrix/internal/logic"
	"github.com/sweeney/digit-matrix/internal/render"
	"github.com/sweeney/digit-matrix/internal/scheduler"
	"github.com/sweeney/digit-matrix/internal/status"
	"github.com/sweeney/digit-matrix/internal/strip"
)

// BounceSpacing is the gap between the synthetic contact bounces that follow
// a simulated press.
const BounceSpacing = 3 * time.Millisecond

// Config configures a Device.
type Config struct {
	Debounce  time.Duration
	Heartbeat time.Duration
	// Bounces is the number of extra edges injected after every press.
	Bounces int
}

// led is the simulated heartbeat LED.
type led struct {
	on atomic.Bool
}

func (l *led) Set(level bool) error {
	l.on.Store(level)
	return nil
}

// Device is a simulated board.
type Device struct {
	counter *logic.Counter
	loop    *scheduler.Loop
	matrix  *strip.Memory
	led     *led
	tracker *status.Tracker
	bounces int

	// OnPress, if set, is called for every edge after it has been handled.
	OnPress func(e gpio.Edge, accepted bool, digit int)
}

// New creates a Device at digit 0 with the LED off.
func New(cfg Config, start time.Time) *Device {
	d := &Device{
		counter: logic.NewCounter(cfg.Debounce),
		matrix:  strip.NewMemory(glyph.Cells),
		led:     &led{},
		bounces: cfg.Bounces,
		tracker: status.NewTracker(start, status.Config{
			DebounceMs:  cfg.Debounce.Milliseconds(),
			HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		}),
	}

	// Memory frames latch immediately; there is nothing to settle.
	r := render.New(d.matrix, render.WithSettle(0))
	d.loop = scheduler.New(d.counter, logic.NewHeartbeat(cfg.Heartbeat), d.led, r,
		scheduler.WithObserver(d.tracker))
	return d
}

// Press simulates pressing b at now, followed by the configured number of
// contact bounces.
func (d *Device) Press(b logic.Button, now time.Duration) {
	d.edge(gpio.Edge{Button: b, Time: now})
	for i := 1; i <= d.bounces; i++ {
		d.edge(gpio.Edge{Button: b, Time: now + time.Duration(i)*BounceSpacing})
	}
}

func (d *Device) edge(e gpio.Edge) {
	accepted := d.counter.OnEdge(e.Button, e.Time)
	digit := d.counter.Digit()
	d.tracker.RecordPress(e.Button, accepted, digit)
	if d.OnPress != nil {
		d.OnPress(e, accepted, digit)
	}
}

// Step runs one loop iteration at now.
func (d *Device) Step(now time.Duration) error {
	err := d.loop.Step(now)
	if err != nil {
		d.tracker.StepFailed(err)
	}
	return err
}

// Digit returns the current digit.
func (d *Device) Digit() int {
	return d.counter.Digit()
}

// Frame returns the last frame shown on the matrix.
func (d *Device) Frame() []strip.Color {
	return d.matrix.Frame()
}

// LED returns the heartbeat LED level.
func (d *Device) LED() bool {
	return d.led.on.Load()
}

// Snapshot returns runtime statistics.
func (d *Device) Snapshot() status.Snapshot {
	return d.tracker.Snapshot()
}
