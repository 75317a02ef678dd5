package strip

// Fake records every pixel for test assertions.
type Fake struct {
	// Pixels contains all pixels sent, in order.
	Pixels []Color

	// SendError, if set, is returned by SendPixel once FailAfter pixels
	// have been accepted.
	SendError error
	FailAfter int
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{}
}

// SendPixel records c.
func (f *Fake) SendPixel(c Color) error {
	if f.SendError != nil && len(f.Pixels) >= f.FailAfter {
		return f.SendError
	}
	f.Pixels = append(f.Pixels, c)
	return nil
}

// Reset clears recorded pixels.
func (f *Fake) Reset() {
	f.Pixels = nil
	f.SendError = nil
	f.FailAfter = 0
}
