// Package strip provides the addressable LED strip abstraction.
// The real implementation drives WS2812 pixels over SPI on Linux.
// The fake and in-memory implementations allow testing without hardware.
package strip

import "fmt"

// Color is a 24-bit 0xRRGGBB value.
type Color uint32

// Off is the unlit color.
const Off Color = 0

// RGB packs r, g and b into a Color.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// RGB returns the channel values.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// GRBWord returns the color in the layout WS2812 shift registers expect when
// fed 32-bit words MSB first: green, red, blue in the top 24 bits.
func (c Color) GRBWord() uint32 {
	r, g, b := c.RGB()
	return (uint32(g)<<16 | uint32(r)<<8 | uint32(b)) << 8
}

// GRBBytes returns the three wire bytes of GRBWord, most significant first.
func (c Color) GRBBytes() [3]byte {
	w := c.GRBWord()
	return [3]byte{byte(w >> 24), byte(w >> 16), byte(w >> 8)}
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Strip accepts pixels in physical order.
type Strip interface {
	// SendPixel writes the next pixel. It blocks until the driver has taken
	// it. Latching a complete frame is the driver's job.
	SendPixel(c Color) error
}
