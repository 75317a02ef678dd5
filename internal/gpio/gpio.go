// Package gpio provides button edge delivery and output pins with hardware
// abstraction. The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"time"

	"github.com/sweeney/digit-matrix/internal/logic"
)

// Edge is a falling edge ("pressed") on one of the buttons.
type Edge struct {
	Button logic.Button
	// Time is the monotonic time of the edge.
	Time time.Duration
}

// EdgeHandler receives button edges. Implementations call it from a single
// goroutine, in arrival order.
type EdgeHandler func(Edge)

// Buttons watches the two buttons for presses.
type Buttons interface {
	// Read returns whether each button is currently held down.
	// Returns (incPressed, decPressed, error).
	Read() (bool, bool, error)

	// Close stops edge delivery and releases GPIO resources.
	Close() error
}

// Output is a single digital output pin.
type Output interface {
	// Set drives the pin high (true) or low (false).
	Set(level bool) error

	// Close drives the pin low and releases it.
	Close() error
}

// Pin defaults (BCM numbering).
const (
	DefaultChip      = "gpiochip0"
	DefaultPinInc    = 5
	DefaultPinDec    = 6
	DefaultPinStatus = 13
)

// DefaultPinsOff are driven low at startup: the unused green and blue legs of
// the RGB status LED.
var DefaultPinsOff = []int{11, 12}
