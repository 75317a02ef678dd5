package strip

import (
	"errors"
	"testing"
)

func TestRGB(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c != 0x123456 {
		t.Errorf("expected 0x123456, got %#x", uint32(c))
	}
	r, g, b := c.RGB()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("expected (0x12, 0x34, 0x56), got (%#x, %#x, %#x)", r, g, b)
	}
	if c.String() != "#123456" {
		t.Errorf("expected #123456, got %s", c.String())
	}
}

func TestGRBWord(t *testing.T) {
	// Blue only: lands in the lowest of the three top bytes
	if w := RGB(0, 0, 255).GRBWord(); w != 0x0000ff00 {
		t.Errorf("blue: expected 0x0000ff00, got %#08x", w)
	}
	if w := RGB(255, 0, 0).GRBWord(); w != 0x00ff0000 {
		t.Errorf("red: expected 0x00ff0000, got %#08x", w)
	}
	if w := RGB(0, 255, 0).GRBWord(); w != 0xff000000 {
		t.Errorf("green: expected 0xff000000, got %#08x", w)
	}
}

func TestGRBBytes(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want [3]byte
	}{
		{"blue", RGB(0, 0, 255), [3]byte{0, 0, 255}},
		{"red", RGB(255, 0, 0), [3]byte{0, 255, 0}},
		{"green", RGB(0, 255, 0), [3]byte{255, 0, 0}},
		{"mixed", RGB(0x12, 0x34, 0x56), [3]byte{0x34, 0x12, 0x56}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.GRBBytes(); got != tt.want {
				t.Errorf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestMemoryLatchesWholeFrames(t *testing.T) {
	m := NewMemory(3)

	m.SendPixel(RGB(1, 0, 0))
	m.SendPixel(RGB(2, 0, 0))
	if m.Frames() != 0 {
		t.Fatalf("expected no frame before 3 pixels, got %d", m.Frames())
	}
	for i, c := range m.Frame() {
		if c != Off {
			t.Errorf("pixel %d: expected off before latch, got %s", i, c)
		}
	}

	m.SendPixel(RGB(3, 0, 0))
	if m.Frames() != 1 {
		t.Fatalf("expected 1 frame, got %d", m.Frames())
	}
	got := m.Frame()
	want := []Color{RGB(1, 0, 0), RGB(2, 0, 0), RGB(3, 0, 0)}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d: got %s, want %s", i, got[i], want[i])
		}
	}

	// Partial next frame does not disturb the shown one
	m.SendPixel(Off)
	if m.Frame()[0] != RGB(1, 0, 0) {
		t.Error("partial frame leaked into shown frame")
	}
}

func TestMemoryFrameIsCopy(t *testing.T) {
	m := NewMemory(1)
	m.SendPixel(RGB(9, 9, 9))
	f := m.Frame()
	f[0] = Off
	if m.Frame()[0] != RGB(9, 9, 9) {
		t.Error("Frame returned shared storage")
	}
}

func TestFakeRecordsAndFails(t *testing.T) {
	f := NewFake()
	f.SendError = errors.New("stuck")
	f.FailAfter = 2

	if err := f.SendPixel(Off); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SendPixel(Off); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.SendPixel(Off); err == nil {
		t.Error("expected error after FailAfter pixels")
	}
	if len(f.Pixels) != 2 {
		t.Errorf("expected 2 recorded pixels, got %d", len(f.Pixels))
	}

	f.Reset()
	if len(f.Pixels) != 0 || f.SendError != nil {
		t.Error("expected Reset to clear state")
	}
}
