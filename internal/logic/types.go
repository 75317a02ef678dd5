// Package logic contains the pure control logic for the digit matrix.
// This package has NO external dependencies (no GPIO, strip, OS, or time.Sleep).
// Time is always injectable as a monotonic offset since boot.
package logic

import "time"

// Digit bounds. The counter never leaves [MinDigit, MaxDigit].
const (
	MinDigit = 0
	MaxDigit = 9
)

// DefaultRefractoryWindow is the minimum spacing between accepted presses of
// the same button.
const DefaultRefractoryWindow = 200 * time.Millisecond

// DefaultHeartbeatPeriod is the status LED toggle cadence.
const DefaultHeartbeatPeriod = 100 * time.Millisecond

// Button identifies one of the two logical buttons.
type Button uint8

const (
	ButtonIncrement Button = iota
	ButtonDecrement
)

// String returns the button name as it appears in logs.
func (b Button) String() string {
	switch b {
	case ButtonIncrement:
		return "INCREMENT"
	case ButtonDecrement:
		return "DECREMENT"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether b is one of the known buttons.
func (b Button) Valid() bool {
	return b == ButtonIncrement || b == ButtonDecrement
}

// gateState tracks debounce state for a single button.
type gateState struct {
	// Time of the last accepted edge
	lastAccepted time.Duration
	// Whether any edge has been accepted yet
	accepted bool
}
