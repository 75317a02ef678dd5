package strip

import "sync"

// Memory latches pixels into frames of a fixed size. Once size pixels have
// been sent the frame becomes visible through Frame and the next pixel starts
// a new frame. Safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	pending []Color
	shown   []Color
	frames  int
}

// NewMemory creates a Memory strip of size pixels, all off.
func NewMemory(size int) *Memory {
	return &Memory{
		pending: make([]Color, 0, size),
		shown:   make([]Color, size),
	}
}

// SendPixel appends c to the pending frame.
func (m *Memory) SendPixel(c Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = append(m.pending, c)
	if len(m.pending) == len(m.shown) {
		copy(m.shown, m.pending)
		m.pending = m.pending[:0]
		m.frames++
	}
	return nil
}

// Frame returns a copy of the last latched frame.
func (m *Memory) Frame() []Color {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Color, len(m.shown))
	copy(out, m.shown)
	return out
}

// Frames returns the number of frames latched so far.
func (m *Memory) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}
