package logic

import "time"

// Heartbeat drives the status LED at a fixed period.
//
// It is level driven: a late check toggles once and re-arms from that check,
// so missed periods are coalesced rather than replayed.
type Heartbeat struct {
	period  time.Duration
	nextDue time.Duration
	level   bool

	// due time before the last toggle, for Undo
	prevDue  time.Duration
	undoable bool
}

// NewHeartbeat creates a heartbeat that is due immediately.
func NewHeartbeat(period time.Duration) *Heartbeat {
	return &Heartbeat{period: period}
}

// Period returns the toggle period.
func (h *Heartbeat) Period() time.Duration {
	return h.period
}

// Level returns the current logical level of the status LED.
func (h *Heartbeat) Level() bool {
	return h.level
}

// NextDue returns the time of the next toggle.
func (h *Heartbeat) NextDue() time.Duration {
	return h.nextDue
}

// Tick flips the level if now has reached the due time. It returns whether a
// toggle happened and the level after the call.
func (h *Heartbeat) Tick(now time.Duration) (toggled, level bool) {
	if now < h.nextDue {
		return false, h.level
	}
	h.prevDue = h.nextDue
	h.undoable = true
	h.level = !h.level
	h.nextDue = now + h.period
	return true, h.level
}

// Undo reverts the most recent toggle, so the next Tick fires again. Use it
// when the level could not be written to the LED. It is a no-op if there is
// nothing to revert.
func (h *Heartbeat) Undo() {
	if !h.undoable {
		return
	}
	h.level = !h.level
	h.nextDue = h.prevDue
	h.undoable = false
}
