// Package status provides a thread-safe runtime statistics tracker for the
// digit-matrix daemon. It is read by the periodic stats log and the
// simulator overlay.
package status

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sweeney/digit-matrix/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	DebounceMs  int64
	HeartbeatMs int64
	YieldMs     int64
	PinInc      int
	PinDec      int
	PinStatus   int
}

// PressCounts tracks edges seen on one button.
type PressCounts struct {
	Accepted int
	Rejected int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Digit            int
	Presses          [2]PressCounts // indexed by logic.Button
	Frames           int
	HeartbeatToggles int
	HeartbeatLevel   bool
	Errors           int
	LastError        string
	StartTime        time.Time
	Now              time.Time
	Config           Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// LogValue implements slog.LogValuer.
func (s Snapshot) LogValue() slog.Value {
	inc := s.Presses[logic.ButtonIncrement]
	dec := s.Presses[logic.ButtonDecrement]
	attrs := []slog.Attr{
		slog.Int("digit", s.Digit),
		slog.Duration("uptime", s.Uptime().Truncate(time.Second)),
		slog.Int("inc_accepted", inc.Accepted),
		slog.Int("inc_rejected", inc.Rejected),
		slog.Int("dec_accepted", dec.Accepted),
		slog.Int("dec_rejected", dec.Rejected),
		slog.Int("frames", s.Frames),
		slog.Int("heartbeats", s.HeartbeatToggles),
		slog.Int("errors", s.Errors),
	}
	if s.LastError != "" {
		attrs = append(attrs, slog.String("last_error", s.LastError))
	}
	return slog.GroupValue(attrs...)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// RecordPress counts an edge on b and the digit after handling it.
// Called from the button edge handler.
func (t *Tracker) RecordPress(b logic.Button, accepted bool, digit int) {
	if !b.Valid() {
		return
	}
	t.mu.Lock()
	if accepted {
		t.snap.Presses[b].Accepted++
	} else {
		t.snap.Presses[b].Rejected++
	}
	t.snap.Digit = digit
	t.mu.Unlock()
}

// HeartbeatToggled counts a status LED toggle.
func (t *Tracker) HeartbeatToggled(level bool) {
	t.mu.Lock()
	t.snap.HeartbeatToggles++
	t.snap.HeartbeatLevel = level
	t.mu.Unlock()
}

// FrameRendered counts a completed render.
func (t *Tracker) FrameRendered(digit int) {
	t.mu.Lock()
	t.snap.Frames++
	t.snap.Digit = digit
	t.mu.Unlock()
}

// StepFailed counts a failed loop iteration.
func (t *Tracker) StepFailed(err error) {
	t.mu.Lock()
	t.snap.Errors++
	t.snap.LastError = err.Error()
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
