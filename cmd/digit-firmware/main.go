//go:build tinygo && rp2040

// Command digit-firmware is the RP2040 build of the digit matrix: two
// pulled-up buttons on pin interrupts, a WS2812 5x5 matrix and a heartbeat LED.
package main

import (
	"context"
	"machine"
	"time"

	"tinygo.org/x/drivers/ws2812"

	"github.com/sweeney/digit-matrix/internal/logic"
	"github.com/sweeney/digit-matrix/internal/render"
	"github.com/sweeney/digit-matrix/internal/scheduler"
	"github.com/sweeney/digit-matrix/internal/strip"
)

const (
	pinInc    = machine.GPIO5
	pinDec    = machine.GPIO6
	pinMatrix = machine.GPIO7
	pinStatus = machine.GPIO13 // red leg of the RGB LED
)

// Green and blue legs of the RGB LED.
var pinsOff = []machine.Pin{machine.GPIO11, machine.GPIO12}

var (
	boot    time.Time
	counter = logic.NewCounter(logic.DefaultRefractoryWindow)
)

func sinceBoot() time.Duration {
	return time.Since(boot)
}

// onEdge runs in interrupt context. Pin interrupts share one IRQ line and do
// not nest, so the counter has a single writer.
func onEdge(p machine.Pin) {
	now := sinceBoot()
	switch p {
	case pinInc:
		counter.OnEdge(logic.ButtonIncrement, now)
	case pinDec:
		counter.OnEdge(logic.ButtonDecrement, now)
	}
}

func main() {
	boot = time.Now()

	for _, p := range append(pinsOff, pinStatus) {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}

	for _, p := range []machine.Pin{pinInc, pinDec} {
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
		if err := p.SetInterrupt(machine.PinFalling, onEdge); err != nil {
			println("button interrupt:", err.Error())
		}
	}

	pinMatrix.Configure(machine.PinConfig{Mode: machine.PinOutput})
	matrix := &ws2812Strip{dev: ws2812.New(pinMatrix)}

	loop := scheduler.New(counter,
		logic.NewHeartbeat(logic.DefaultHeartbeatPeriod),
		outputPin(pinStatus),
		render.New(matrix),
		scheduler.WithObserver(consoleObserver{}),
	)

	println("digit-matrix firmware started")
	loop.Run(context.Background(), sinceBoot)
}

// outputPin adapts a machine pin to scheduler.StatusPin.
type outputPin machine.Pin

func (p outputPin) Set(level bool) error {
	machine.Pin(p).Set(level)
	return nil
}

// ws2812Strip sends one pixel at a time, GRB order on the wire. The latch
// happens when the line idles between frames.
type ws2812Strip struct {
	dev ws2812.Device
}

func (s *ws2812Strip) SendPixel(c strip.Color) error {
	for _, v := range c.GRBBytes() {
		if err := s.dev.WriteByte(v); err != nil {
			return err
		}
	}
	return nil
}

type consoleObserver struct{}

func (consoleObserver) HeartbeatToggled(bool) {}
func (consoleObserver) FrameRendered(int)     {}

func (consoleObserver) StepFailed(err error) {
	println("loop:", err.Error())
}
