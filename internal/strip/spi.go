//go:build linux && !tinygo

package strip

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// DefaultLEDFrequency is the WS2812 data rate. nrzled derives the SPI clock
// from it.
const DefaultLEDFrequency = 800 * physic.KiloHertz

// SPI drives a WS2812 strip from a Linux SPI port. Pixels are buffered until a
// whole frame has been sent and then written in one transfer.
type SPI struct {
	port   spi.PortCloser
	dev    *nrzled.Dev
	frame  []byte
	pixels int
	sent   int
}

// NewSPI opens the named SPI port ("" for the first one) for a strip of
// pixels LEDs.
func NewSPI(name string, pixels int, freq physic.Frequency) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", name, err)
	}

	opts := nrzled.DefaultOpts
	opts.NumPixels = pixels
	opts.Channels = 3
	opts.Freq = freq

	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("init nrzled: %w", err)
	}

	return &SPI{
		port:   port,
		dev:    dev,
		frame:  make([]byte, pixels*3),
		pixels: pixels,
	}, nil
}

// SendPixel buffers c and flushes the frame once it is complete.
func (s *SPI) SendPixel(c Color) error {
	r, g, b := c.RGB()
	i := s.sent * 3
	s.frame[i], s.frame[i+1], s.frame[i+2] = r, g, b
	s.sent++
	if s.sent < s.pixels {
		return nil
	}

	s.sent = 0
	if _, err := s.dev.Write(s.frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close turns the strip off and releases the SPI port.
func (s *SPI) Close() error {
	var errs []error
	if s.dev != nil {
		if err := s.dev.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt strip: %w", err))
		}
	}
	if s.port != nil {
		if err := s.port.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close spi port: %w", err))
		}
	}
	return errors.Join(errs...)
}
