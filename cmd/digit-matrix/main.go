// Command digit-matrix shows a button-selected digit on a 5x5 WS2812 matrix
// and blinks a heartbeat LED.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/sweeney/digit-matrix/internal/glyph"
	"github.com/sweeney/digit-matrix/internal/gpio"
	"github.com/sweeney/digit-matrix/internal/logic"
	"github.com/sweeney/digit-matrix/internal/render"
	"github.com/sweeney/digit-matrix/internal/scheduler"
	"github.com/sweeney/digit-matrix/internal/status"
	"github.com/sweeney/digit-matrix/internal/strip"
)

func main() {
	log.SetFlags(0)

	cfg := defaultConfig()
	cfg.bindFlags(pflag.CommandLine)
	pflag.Parse()

	logger := newLogger(os.Stderr, cfg.Verbose, !isatty.IsTerminal(os.Stderr.Fd()))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func newLogger(w io.Writer, verbose, noColor bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}))
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	startTime := time.Now()
	counter := logic.NewCounter(cfg.Debounce)
	tracker := status.NewTracker(startTime, cfg.statusConfig())

	// Unused legs of the RGB status LED stay dark.
	offPins, err := openOffPins(func(pin int) (gpio.Output, error) {
		return gpio.NewRealPin(cfg.Chip, pin, false)
	}, cfg.PinsOff)
	if err != nil {
		return fmt.Errorf("init off pin: %w", err)
	}
	for _, p := range offPins {
		defer closeLogged(logger, "off pin", p)
	}

	statusPin, err := gpio.NewRealPin(cfg.Chip, cfg.PinStatus, false)
	if err != nil {
		return fmt.Errorf("init status pin: %w", err)
	}
	defer closeLogged(logger, "status pin", statusPin)

	matrix, err := strip.NewSPI(cfg.SPI, glyph.Cells, cfg.ledFrequency())
	if err != nil {
		return fmt.Errorf("init strip: %w", err)
	}
	defer closeLogged(logger, "strip", matrix)

	renderer := render.New(matrix, render.WithSettle(cfg.Settle))
	defer func() {
		if err := renderer.Clear(); err != nil {
			logger.Error("clear matrix", "err", err)
		}
	}()

	buttons, err := gpio.NewRealButtons(cfg.Chip, cfg.PinInc, cfg.PinDec, pressHandler(counter, tracker, logger))
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer closeLogged(logger, "buttons", buttons)

	warnHeldButtons(buttons, logger)

	loop := scheduler.New(counter, logic.NewHeartbeat(cfg.Heartbeat), statusPin, renderer,
		scheduler.WithYield(cfg.Yield),
		scheduler.WithObserver(newLoopObserver(tracker, logger)),
	)

	logger.Info("started",
		"debounce", cfg.Debounce,
		"heartbeat", cfg.Heartbeat,
		"yield", cfg.Yield,
		"pin_inc", cfg.PinInc,
		"pin_dec", cfg.PinDec,
		"pin_status", cfg.PinStatus,
	)

	clock := func() time.Duration { return time.Since(startTime) }
	err = runLoop(ctx, loop, clock, tracker, cfg.Stats, logger)
	logger.Info("shutting down", "status", tracker.Snapshot())
	return err
}

// runLoop drives the scheduling loop and the stats reporter until ctx is done.
func runLoop(ctx context.Context, loop *scheduler.Loop, clock func() time.Duration, tracker *status.Tracker, statsEvery time.Duration, logger *slog.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return loop.Run(ctx, clock)
	})

	if statsEvery > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(statsEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					logger.Info("stats", "status", tracker.Snapshot())
				}
			}
		})
	}

	return g.Wait()
}

// pressHandler feeds button edges through the debounce gate. It runs on the
// GPIO event goroutine.
func pressHandler(counter *logic.Counter, tracker *status.Tracker, logger *slog.Logger) gpio.EdgeHandler {
	return func(e gpio.Edge) {
		accepted := counter.OnEdge(e.Button, e.Time)
		digit := counter.Digit()
		tracker.RecordPress(e.Button, accepted, digit)

		if accepted {
			logger.Debug("press", "button", e.Button, "digit", digit)
		} else {
			logger.Debug("press ignored", "button", e.Button, "at", e.Time)
		}
	}
}

// loopObserver forwards loop activity to the tracker and logs failures once
// per distinct error rather than on every iteration.
type loopObserver struct {
	*status.Tracker
	logger  *slog.Logger
	lastErr string
}

func newLoopObserver(tracker *status.Tracker, logger *slog.Logger) *loopObserver {
	return &loopObserver{Tracker: tracker, logger: logger}
}

func (o *loopObserver) FrameRendered(digit int) {
	if o.lastErr != "" {
		o.logger.Info("render recovered", "digit", digit)
		o.lastErr = ""
	}
	o.Tracker.FrameRendered(digit)
}

func (o *loopObserver) StepFailed(err error) {
	if msg := err.Error(); msg != o.lastErr {
		o.logger.Error("loop step failed", "err", err)
		o.lastErr = msg
	}
	o.Tracker.StepFailed(err)
}

// openOffPins opens each pin as an output held low. If one fails, the pins
// already opened are closed.
func openOffPins(open func(pin int) (gpio.Output, error), pins []int) ([]gpio.Output, error) {
	outs := make([]gpio.Output, 0, len(pins))
	for _, pin := range pins {
		out, err := open(pin)
		if err != nil {
			for _, o := range outs {
				o.Close()
			}
			return nil, fmt.Errorf("pin %d: %w", pin, err)
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// warnHeldButtons logs buttons that are already down, which usually means a
// stuck switch or a missing pull-up.
func warnHeldButtons(buttons gpio.Buttons, logger *slog.Logger) {
	inc, dec, err := buttons.Read()
	if err != nil {
		logger.Warn("read buttons", "err", err)
		return
	}
	if inc || dec {
		logger.Warn("button held at startup", "inc", inc, "dec", dec)
	}
}

func closeLogged(logger *slog.Logger, what string, c io.Closer) {
	if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logger.Error("close "+what, "err", err)
	}
}
