//go:build !linux || tinygo

package strip

import (
	"errors"

	"periph.io/x/conn/v3/physic"
)

// DefaultLEDFrequency matches the Linux build so flag defaults compile
// everywhere.
const DefaultLEDFrequency = 800 * physic.KiloHertz

// SPI is not available on non-Linux platforms.
type SPI struct{}

// NewSPI returns an error on non-Linux platforms.
func NewSPI(name string, pixels int, freq physic.Frequency) (*SPI, error) {
	return nil, errors.New("strip: spi not supported on this platform (requires Linux)")
}

// SendPixel is not implemented on non-Linux platforms.
func (s *SPI) SendPixel(c Color) error {
	return errors.New("strip: spi not supported")
}

// Close is not implemented on non-Linux platforms.
func (s *SPI) Close() error {
	return nil
}
