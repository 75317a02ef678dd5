//go:build linux && !tinygo

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealButtons delivers button presses from actual hardware using the Linux
// GPIO character device. Both lines share one request, so the kernel's edge
// events arrive on a single goroutine in hardware order.
type RealButtons struct {
	chip    *gpiocdev.Chip
	lines   *gpiocdev.Lines
	offsets [2]int
}

// NewRealButtons requests pinInc and pinDec as pulled-up inputs and calls
// handle for every falling edge. Edge times come from the kernel's
// monotonic clock.
func NewRealButtons(chipName string, pinInc, pinDec int, handle EdgeHandler) (*RealButtons, error) {
	if pinInc == pinDec {
		return nil, fmt.Errorf("buttons share pin %d", pinInc)
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	b := &RealButtons{
		chip:    chip,
		offsets: [2]int{pinInc, pinDec},
	}

	// Buttons pull the line to ground when pressed.
	lines, err := chip.RequestLines(
		[]int{pinInc, pinDec},
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithMonotonicEventClock,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			b.dispatch(evt, handle)
		}),
	)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pins %d,%d: %w", pinInc, pinDec, err)
	}
	b.lines = lines

	return b, nil
}

func (b *RealButtons) dispatch(evt gpiocdev.LineEvent, handle EdgeHandler) {
	if evt.Type != gpiocdev.LineEventFallingEdge {
		return
	}
	button, ok := buttonFor(b.offsets, evt.Offset)
	if !ok {
		return
	}
	handle(Edge{Button: button, Time: evt.Timestamp})
}

// Read returns whether each button is held down (line pulled low).
func (b *RealButtons) Read() (bool, bool, error) {
	values := make([]int, 2)
	if err := b.lines.Values(values); err != nil {
		return false, false, fmt.Errorf("read button pins: %w", err)
	}
	return values[0] == 0, values[1] == 0, nil
}

// Close stops edge delivery and releases GPIO resources.
func (b *RealButtons) Close() error {
	var errs []error
	if b.lines != nil {
		if err := b.lines.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pins: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	return errors.Join(errs...)
}

// RealPin drives a single output line.
type RealPin struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
	pin  int
}

// NewRealPin requests pin as an output at the given initial level.
func NewRealPin(chipName string, pin int, initial bool) (*RealPin, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(levelValue(initial)))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}

	return &RealPin{chip: chip, line: line, pin: pin}, nil
}

// Set drives the pin.
func (p *RealPin) Set(level bool) error {
	if err := p.line.SetValue(levelValue(level)); err != nil {
		return fmt.Errorf("set pin %d: %w", p.pin, err)
	}
	return nil
}

// Close drives the pin low and releases it.
func (p *RealPin) Close() error {
	var errs []error
	if p.line != nil {
		if err := p.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("reset pin %d: %w", p.pin, err))
		}
		if err := p.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", p.pin, err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	return errors.Join(errs...)
}

func levelValue(level bool) int {
	if level {
		return 1
	}
	return 0
}
