package logic

import (
	"sync"
	"testing"
	"time"
)

func TestNewCounter(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)
	if c == nil {
		t.Fatal("NewCounter returned nil")
	}
	if c.Window() != 200*time.Millisecond {
		t.Errorf("expected window 200ms, got %v", c.Window())
	}
	if c.Digit() != 0 {
		t.Errorf("expected initial digit 0, got %d", c.Digit())
	}
}

func TestIncrementScenario(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)

	// t=0ms: first press is accepted
	if !c.OnEdge(ButtonIncrement, 0) {
		t.Error("expected press at t=0ms to be accepted")
	}
	if c.Digit() != 1 {
		t.Errorf("expected digit 1 after first press, got %d", c.Digit())
	}

	// t=50ms: bounce, rejected
	if c.OnEdge(ButtonIncrement, 50*time.Millisecond) {
		t.Error("expected press at t=50ms to be rejected")
	}
	if c.Digit() != 1 {
		t.Errorf("expected digit 1 after rejected press, got %d", c.Digit())
	}

	// t=250ms: accepted
	if !c.OnEdge(ButtonIncrement, 250*time.Millisecond) {
		t.Error("expected press at t=250ms to be accepted")
	}
	if c.Digit() != 2 {
		t.Errorf("expected final digit 2, got %d", c.Digit())
	}
}

func TestWindowBoundary(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)
	c.OnEdge(ButtonIncrement, time.Second)

	// Just inside the window
	if c.OnEdge(ButtonIncrement, time.Second+199*time.Millisecond) {
		t.Error("expected press at +199ms to be rejected")
	}

	// Exactly at the window: accepted (>=)
	if !c.OnEdge(ButtonIncrement, time.Second+200*time.Millisecond) {
		t.Error("expected press at +200ms to be accepted")
	}
	if c.Digit() != 2 {
		t.Errorf("expected digit 2, got %d", c.Digit())
	}
}

func TestRejectedEdgeDoesNotExtendWindow(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)
	c.OnEdge(ButtonIncrement, 0)

	// Bounces keep arriving, but the window is measured from the last accepted edge
	c.OnEdge(ButtonIncrement, 150*time.Millisecond)
	c.OnEdge(ButtonIncrement, 190*time.Millisecond)

	if !c.OnEdge(ButtonIncrement, 210*time.Millisecond) {
		t.Error("expected press 210ms after last accepted edge to be accepted")
	}
}

func TestButtonsDebounceIndependently(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)

	c.OnEdge(ButtonIncrement, 0)
	c.OnEdge(ButtonIncrement, 300*time.Millisecond)
	if c.Digit() != 2 {
		t.Fatalf("expected digit 2, got %d", c.Digit())
	}

	// Decrement 10ms after an increment is still accepted: separate gate
	if !c.OnEdge(ButtonDecrement, 310*time.Millisecond) {
		t.Error("expected decrement to be accepted independently of increment gate")
	}
	if c.Digit() != 1 {
		t.Errorf("expected digit 1, got %d", c.Digit())
	}

	if c.OnEdge(ButtonDecrement, 400*time.Millisecond) {
		t.Error("expected second decrement within window to be rejected")
	}
}

func TestIncrementAtMaxIsNoop(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)
	now := time.Duration(0)
	for i := 0; i < 9; i++ {
		c.OnEdge(ButtonIncrement, now)
		now += 250 * time.Millisecond
	}
	if c.Digit() != 9 {
		t.Fatalf("expected digit 9, got %d", c.Digit())
	}

	// Accepted by the gate, but the digit stays clamped
	if !c.OnEdge(ButtonIncrement, now) {
		t.Error("expected press to pass the gate at the upper bound")
	}
	if c.Digit() != 9 {
		t.Errorf("expected digit to remain 9, got %d", c.Digit())
	}

	// The clamped press still refreshed the timestamp
	if c.OnEdge(ButtonIncrement, now+100*time.Millisecond) {
		t.Error("expected press within window of a clamped press to be rejected")
	}
}

func TestDecrementAtMinIsNoop(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)

	if !c.OnEdge(ButtonDecrement, 0) {
		t.Error("expected first decrement to pass the gate")
	}
	if c.Digit() != 0 {
		t.Errorf("expected digit to remain 0, got %d", c.Digit())
	}
}

func TestDigitStaysInRange(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)

	// Deterministic pseudo-random walk with a mix of bounced and clean presses
	seed := uint32(12345)
	now := time.Duration(0)
	for i := 0; i < 5000; i++ {
		seed = seed*1664525 + 1013904223
		b := ButtonIncrement
		if seed&0x100 != 0 {
			b = ButtonDecrement
		}
		now += time.Duration(seed%400) * time.Millisecond
		c.OnEdge(b, now)

		d := c.Digit()
		if d < MinDigit || d > MaxDigit {
			t.Fatalf("step %d: digit %d out of range", i, d)
		}
	}
}

func TestDigitChangesAtMostOncePerWindow(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)

	// 40 edges 10ms apart: only the edges at 0, 200 and 400ms can be accepted
	accepted := 0
	for i := 0; i < 40; i++ {
		if c.OnEdge(ButtonIncrement, time.Duration(i)*10*time.Millisecond) {
			accepted++
		}
	}
	if accepted != 2 {
		t.Errorf("expected 2 accepted edges in 390ms, got %d", accepted)
	}
	if c.Digit() != 2 {
		t.Errorf("expected digit 2, got %d", c.Digit())
	}
}

func TestUnknownButtonIgnored(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)
	if c.OnEdge(Button(7), 0) {
		t.Error("expected unknown button to be rejected")
	}
	if c.Digit() != 0 {
		t.Errorf("expected digit 0, got %d", c.Digit())
	}
}

func TestButtonString(t *testing.T) {
	if ButtonIncrement.String() != "INCREMENT" {
		t.Errorf("got %q", ButtonIncrement.String())
	}
	if ButtonDecrement.String() != "DECREMENT" {
		t.Errorf("got %q", ButtonDecrement.String())
	}
	if Button(9).String() != "UNKNOWN" {
		t.Errorf("got %q", Button(9).String())
	}
}

// TestConcurrentReader runs the reader on another goroutine while a single
// writer drives edges, as the render loop does. Run with -race.
func TestConcurrentReader(t *testing.T) {
	c := NewCounter(DefaultRefractoryWindow)

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if d := c.Digit(); d < MinDigit || d > MaxDigit {
				t.Errorf("reader observed digit %d", d)
				return
			}
		}
	}()

	now := time.Duration(0)
	for i := 0; i < 1000; i++ {
		b := ButtonIncrement
		if i%3 == 0 {
			b = ButtonDecrement
		}
		c.OnEdge(b, now)
		now += 200 * time.Millisecond
	}
	close(done)
	wg.Wait()
}
