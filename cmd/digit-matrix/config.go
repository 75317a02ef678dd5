package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"periph.io/x/conn/v3/physic"

	"github.com/sweeney/digit-matrix/internal/gpio"
	"github.com/sweeney/digit-matrix/internal/logic"
	"github.com/sweeney/digit-matrix/internal/render"
	"github.com/sweeney/digit-matrix/internal/scheduler"
	"github.com/sweeney/digit-matrix/internal/status"
	"github.com/sweeney/digit-matrix/internal/strip"
)

type config struct {
	Chip      string
	PinInc    int
	PinDec    int
	PinStatus int
	PinsOff   []int
	SPI       string
	LEDKHz    uint
	Debounce  time.Duration
	Heartbeat time.Duration
	Yield     time.Duration
	Settle    time.Duration
	Stats     time.Duration
	Verbose   bool
}

func defaultConfig() config {
	return config{
		Chip:      gpio.DefaultChip,
		PinInc:    gpio.DefaultPinInc,
		PinDec:    gpio.DefaultPinDec,
		PinStatus: gpio.DefaultPinStatus,
		PinsOff:   append([]int(nil), gpio.DefaultPinsOff...),
		LEDKHz:    uint(strip.DefaultLEDFrequency / physic.KiloHertz),
		Debounce:  logic.DefaultRefractoryWindow,
		Heartbeat: logic.DefaultHeartbeatPeriod,
		Yield:     scheduler.DefaultYield,
		Settle:    render.DefaultSettle,
		Stats:     time.Minute,
	}
}

func (c *config) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Chip, "chip", c.Chip, "GPIO chip device name")
	fs.IntVar(&c.PinInc, "pin-inc", c.PinInc, "BCM pin number for the increment button")
	fs.IntVar(&c.PinDec, "pin-dec", c.PinDec, "BCM pin number for the decrement button")
	fs.IntVar(&c.PinStatus, "pin-status", c.PinStatus, "BCM pin number for the heartbeat LED")
	fs.IntSliceVar(&c.PinsOff, "pin-off", c.PinsOff, "BCM pins driven low at startup (unused RGB LED legs)")
	fs.StringVar(&c.SPI, "spi", c.SPI, `SPI port for the LED matrix ("" for the first one)`)
	fs.UintVar(&c.LEDKHz, "led-khz", c.LEDKHz, "WS2812 data rate in kHz")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "Minimum time between accepted presses of one button")
	fs.DurationVar(&c.Heartbeat, "heartbeat", c.Heartbeat, "Heartbeat LED toggle period")
	fs.DurationVar(&c.Yield, "yield", c.Yield, "Pause between loop iterations")
	fs.DurationVar(&c.Settle, "settle", c.Settle, "Pause between the clear and paint passes")
	fs.DurationVar(&c.Stats, "stats", c.Stats, "Stats log interval (0 to disable)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Log every button press")
}

func (c config) validate() error {
	var errs []error

	pins := map[int]string{}
	claim := func(pin int, role string) {
		if pin < 0 {
			errs = append(errs, fmt.Errorf("%s pin %d is negative", role, pin))
			return
		}
		if other, taken := pins[pin]; taken {
			errs = append(errs, fmt.Errorf("%s pin %d already used for %s", role, pin, other))
			return
		}
		pins[pin] = role
	}
	claim(c.PinInc, "increment")
	claim(c.PinDec, "decrement")
	claim(c.PinStatus, "status")
	for _, p := range c.PinsOff {
		claim(p, "off")
	}

	if c.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("debounce must be positive, got %v", c.Debounce))
	}
	if c.Heartbeat <= 0 {
		errs = append(errs, fmt.Errorf("heartbeat must be positive, got %v", c.Heartbeat))
	}
	if c.Yield <= 0 || c.Yield > 100*time.Millisecond {
		errs = append(errs, fmt.Errorf("yield must be in (0, 100ms], got %v", c.Yield))
	}
	if c.Settle < 0 {
		errs = append(errs, fmt.Errorf("settle must not be negative, got %v", c.Settle))
	}
	if c.Stats < 0 {
		errs = append(errs, fmt.Errorf("stats interval must not be negative, got %v", c.Stats))
	}
	if c.LEDKHz == 0 {
		errs = append(errs, errors.New("led-khz must be positive"))
	}

	return errors.Join(errs...)
}

func (c config) ledFrequency() physic.Frequency {
	return physic.Frequency(c.LEDKHz) * physic.KiloHertz
}

func (c config) statusConfig() status.Config {
	return status.Config{
		DebounceMs:  c.Debounce.Milliseconds(),
		HeartbeatMs: c.Heartbeat.Milliseconds(),
		YieldMs:     c.Yield.Milliseconds(),
		PinInc:      c.PinInc,
		PinDec:      c.PinDec,
		PinStatus:   c.PinStatus,
	}
}
