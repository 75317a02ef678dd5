//go:build !linux || tinygo

package gpio

import "errors"

// RealButtons is not available on non-Linux platforms.
type RealButtons struct{}

// NewRealButtons returns an error on non-Linux platforms.
func NewRealButtons(chipName string, pinInc, pinDec int, handle EdgeHandler) (*RealButtons, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (b *RealButtons) Read() (bool, bool, error) {
	return false, false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (b *RealButtons) Close() error {
	return nil
}

// RealPin is not available on non-Linux platforms.
type RealPin struct{}

// NewRealPin returns an error on non-Linux platforms.
func NewRealPin(chipName string, pin int, initial bool) (*RealPin, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Set is not implemented on non-Linux platforms.
func (p *RealPin) Set(level bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (p *RealPin) Close() error {
	return nil
}
