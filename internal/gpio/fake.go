package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/digit-matrix/internal/logic"
)

// FakeButtons is a test double that delivers scripted presses.
type FakeButtons struct {
	// Handler receives edges injected with Press.
	Handler EdgeHandler

	// Inc and Dec are returned by Read as the held state.
	Inc bool
	Dec bool

	// ReadError, if set, will be returned by Read()
	ReadError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeButtons creates FakeButtons delivering to handle.
func NewFakeButtons(handle EdgeHandler) *FakeButtons {
	return &FakeButtons{Handler: handle}
}

// Press delivers a falling edge for b at time at. Presses after Close are
// dropped, as a released line delivers nothing.
func (f *FakeButtons) Press(b logic.Button, at time.Duration) {
	if f.Closed || f.Handler == nil {
		return
	}
	f.Handler(Edge{Button: b, Time: at})
}

// Read returns the scripted held state.
func (f *FakeButtons) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	return f.Inc, f.Dec, nil
}

// Close marks the buttons as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// FakePin records every level written to it.
type FakePin struct {
	// Levels contains every level passed to Set, in order.
	Levels []bool

	// SetError, if set, will be returned by Set()
	SetError error

	// Closed tracks if Close was called
	Closed bool
}

// NewFakePin creates a FakePin.
func NewFakePin() *FakePin {
	return &FakePin{}
}

// Set records level.
func (f *FakePin) Set(level bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	if f.Closed {
		return errors.New("pin closed")
	}
	f.Levels = append(f.Levels, level)
	return nil
}

// Level returns the last level written, or false if none.
func (f *FakePin) Level() bool {
	if len(f.Levels) == 0 {
		return false
	}
	return f.Levels[len(f.Levels)-1]
}

// Close marks the pin as closed.
func (f *FakePin) Close() error {
	f.Closed = true
	return nil
}
