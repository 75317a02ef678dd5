//go:build !tinygo

// Command digit-sim runs the digit matrix in a desktop window. The arrow keys
// (or + and -) stand in for the two buttons.
package main

import (
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/sweeney/digit-matrix/internal/glyph"
	"github.com/sweeney/digit-matrix/internal/gpio"
	"github.com/sweeney/digit-matrix/internal/logic"
	"github.com/sweeney/digit-matrix/internal/scheduler"
	"github.com/sweeney/digit-matrix/internal/sim"
	"github.com/sweeney/digit-matrix/internal/strip"
)

const (
	cellSize = 40
	cellGap  = 6
	margin   = 20
	ledSize  = 10
	textRows = 4

	screenWidth  = 2*margin + glyph.Cols*cellSize + (glyph.Cols-1)*cellGap
	screenHeight = 2*margin + glyph.Rows*cellSize + (glyph.Rows-1)*cellGap + 2*ledSize + textRows*16
)

var (
	unlitColor = color.RGBA{0x20, 0x20, 0x20, 0xff}
	ledOn      = color.RGBA{0xff, 0x20, 0x20, 0xff}
	ledOff     = color.RGBA{0x40, 0x10, 0x10, 0xff}

	incKeys = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowRight, ebiten.KeyEqual, ebiten.KeyNumpadAdd}
	decKeys = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyMinus, ebiten.KeyNumpadSubtract}
)

func main() {
	debounce := pflag.Duration("debounce", logic.DefaultRefractoryWindow, "Minimum time between accepted presses of one button")
	heartbeat := pflag.Duration("heartbeat", logic.DefaultHeartbeatPeriod, "Heartbeat LED toggle period")
	bounces := pflag.Int("bounce", 0, "Contact bounces injected after every key press")
	verbose := pflag.BoolP("verbose", "v", false, "Log every button press")
	pflag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))

	start := time.Now()
	dev := sim.New(sim.Config{Debounce: *debounce, Heartbeat: *heartbeat, Bounces: *bounces}, start)
	dev.OnPress = func(e gpio.Edge, accepted bool, digit int) {
		logger.Debug("press", "button", e.Button, "at", e.Time, "accepted", accepted, "digit", digit)
	}

	g := &game{dev: dev, start: start}

	ebiten.SetWindowTitle("digit-matrix")
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	// One tick per loop iteration.
	ebiten.SetTPS(int(time.Second / scheduler.DefaultYield))

	logger.Info("simulator started", "debounce", *debounce, "heartbeat", *heartbeat, "bounce", *bounces)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("fatal: %v", err)
	}
	logger.Info("simulator stopped", "status", dev.Snapshot())
}

type game struct {
	dev   *sim.Device
	start time.Time
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Since(g.start)
	for _, k := range incKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.dev.Press(logic.ButtonIncrement, now)
		}
	}
	for _, k := range decKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.dev.Press(logic.ButtonDecrement, now)
		}
	}

	// Render failures are counted in the snapshot shown on screen.
	_ = g.dev.Step(now)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	for i, c := range g.dev.Frame() {
		row, col := i/glyph.Cols, i%glyph.Cols
		x := float32(margin + col*(cellSize+cellGap))
		y := float32(margin + row*(cellSize+cellGap))
		vector.DrawFilledRect(screen, x, y, cellSize, cellSize, cellColor(c), false)
	}

	top := margin + glyph.Rows*cellSize + (glyph.Rows-1)*cellGap + ledSize
	led := ledOff
	if g.dev.LED() {
		led = ledOn
	}
	vector.DrawFilledCircle(screen, float32(margin+ledSize/2), float32(top+ledSize/2), ledSize/2, led, true)

	snap := g.dev.Snapshot()
	inc := snap.Presses[logic.ButtonIncrement]
	dec := snap.Presses[logic.ButtonDecrement]
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"digit %d  frames %d\ninc %d/%d  dec %d/%d\nerrors %d",
		snap.Digit, snap.Frames,
		inc.Accepted, inc.Accepted+inc.Rejected,
		dec.Accepted, dec.Accepted+dec.Rejected,
		snap.Errors,
	), margin+2*ledSize, top)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func cellColor(c strip.Color) color.RGBA {
	if c == strip.Off {
		return unlitColor
	}
	r, gg, b := c.RGB()
	return color.RGBA{r, gg, b, 0xff}
}
