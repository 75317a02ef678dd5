// Package render paints digit glyphs onto the LED matrix.
package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/digit-matrix/internal/glyph"
	"github.com/sweeney/digit-matrix/internal/strip"
)

// LitColor is the color of lit cells.
const LitColor strip.Color = 0x0000ff

// DefaultSettle is the pause between the clear pass and the paint pass.
const DefaultSettle = time.Millisecond

// ErrNoGlyph is returned when asked to render a value outside 0-9.
var ErrNoGlyph = errors.New("no glyph for digit")

// Renderer writes full frames to a strip: every call clears all cells, waits
// for the strip to settle, then paints the glyph in row-major order.
type Renderer struct {
	strip  strip.Strip
	lit    strip.Color
	settle time.Duration
	sleep  func(time.Duration)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSettle sets the delay between the clear and paint passes.
func WithSettle(d time.Duration) Option {
	return func(r *Renderer) { r.settle = d }
}

// WithSleep replaces time.Sleep for the settle delay.
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Renderer) { r.sleep = sleep }
}

// New creates a Renderer for s.
func New(s strip.Strip, opts ...Option) *Renderer {
	r := &Renderer{
		strip:  s,
		lit:    LitColor,
		settle: DefaultSettle,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render shows digit on the matrix. A strip error aborts the pass; the next
// call starts over with a full clear.
func (r *Renderer) Render(digit int) error {
	g, ok := glyph.For(digit)
	if !ok {
		return fmt.Errorf("render %d: %w", digit, ErrNoGlyph)
	}

	if err := r.Clear(); err != nil {
		return err
	}

	if r.settle > 0 {
		r.sleep(r.settle)
	}

	for i, on := range g {
		c := strip.Off
		if on {
			c = r.lit
		}
		if err := r.strip.SendPixel(c); err != nil {
			return fmt.Errorf("paint pixel %d: %w", i, err)
		}
	}
	return nil
}

// Clear turns every cell off.
func (r *Renderer) Clear() error {
	for i := 0; i < glyph.Cells; i++ {
		if err := r.strip.SendPixel(strip.Off); err != nil {
			return fmt.Errorf("clear pixel %d: %w", i, err)
		}
	}
	return nil
}
