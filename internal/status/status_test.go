package status

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/digit-matrix/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{DebounceMs: 200, HeartbeatMs: 100, PinInc: 5, PinDec: 6, PinStatus: 13}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.DebounceMs != 200 {
		t.Errorf("Config.DebounceMs: got %d, want 200", snap.Config.DebounceMs)
	}
	if snap.Config.PinStatus != 13 {
		t.Errorf("Config.PinStatus: got %d, want 13", snap.Config.PinStatus)
	}
	if snap.Digit != 0 || snap.Frames != 0 || snap.Errors != 0 {
		t.Errorf("expected zero counters initially, got %+v", snap)
	}
}

func TestRecordPress(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.RecordPress(logic.ButtonIncrement, true, 1)
	tr.RecordPress(logic.ButtonIncrement, false, 1)
	tr.RecordPress(logic.ButtonIncrement, false, 1)
	tr.RecordPress(logic.ButtonDecrement, true, 0)
	tr.RecordPress(logic.Button(5), true, 7)

	snap := tr.Snapshot()
	inc := snap.Presses[logic.ButtonIncrement]
	if inc.Accepted != 1 || inc.Rejected != 2 {
		t.Errorf("increment: got %+v, want {1 2}", inc)
	}
	dec := snap.Presses[logic.ButtonDecrement]
	if dec.Accepted != 1 || dec.Rejected != 0 {
		t.Errorf("decrement: got %+v, want {1 0}", dec)
	}
	if snap.Digit != 0 {
		t.Errorf("Digit: got %d, want 0", snap.Digit)
	}
}

func TestLoopNotifications(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.HeartbeatToggled(true)
	tr.HeartbeatToggled(false)
	tr.HeartbeatToggled(true)
	tr.FrameRendered(3)
	tr.FrameRendered(4)
	tr.StepFailed(errors.New("render: stuck"))

	snap := tr.Snapshot()
	if snap.HeartbeatToggles != 3 || !snap.HeartbeatLevel {
		t.Errorf("heartbeat: got toggles=%d level=%v", snap.HeartbeatToggles, snap.HeartbeatLevel)
	}
	if snap.Frames != 2 || snap.Digit != 4 {
		t.Errorf("frames: got frames=%d digit=%d", snap.Frames, snap.Digit)
	}
	if snap.Errors != 1 || snap.LastError != "render: stuck" {
		t.Errorf("errors: got %d %q", snap.Errors, snap.LastError)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})
	tr.now = func() time.Time { return start.Add(90 * time.Second) }

	if got := tr.Snapshot().Uptime(); got != 90*time.Second {
		t.Errorf("Uptime: got %v, want 90s", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.FrameRendered(1)

	snap := tr.Snapshot()
	tr.FrameRendered(2)

	if snap.Frames != 1 || snap.Digit != 1 {
		t.Errorf("snapshot changed after update: %+v", snap)
	}
}

func TestSnapshotLogValue(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})
	tr.now = func() time.Time { return start.Add(61500 * time.Millisecond) }
	tr.RecordPress(logic.ButtonIncrement, true, 1)
	tr.StepFailed(errors.New("stuck"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	logger.Info("stats", "status", tr.Snapshot())

	out := buf.String()
	for _, want := range []string{
		"status.digit=1",
		"status.uptime=1m1s",
		"status.inc_accepted=1",
		"status.errors=1",
		"status.last_error=stuck",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %s", want, out)
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	var wg sync.WaitGroup

	// Button handler
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.RecordPress(logic.ButtonIncrement, i%2 == 0, i%10)
		}
	}()

	// Loop
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.HeartbeatToggled(i%2 == 0)
			tr.FrameRendered(i % 10)
		}
	}()

	// Reader
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = snap.Uptime()
		}
	}()

	wg.Wait()
}
