//go:build tinygo

package main

import (
	"fmt"
	"log/slog"
	"machine"
	"time"

	"nifri2/ghost-lantern/cmd"
)

// Build-time overrides, set via -ldflags
// e.g. -ldflags="-X main.buildSensor=pir -X main.buildOrder=grb -X main.buildThreshold=30000"
var (
	buildSensor    string
	buildPolarity  string
	buildOrder     string
	buildThreshold string
)

func loadConfig() cmd.Config {
	cfg := cmd.DefaultConfig()
	cfg.Polarity = cmd.ParsePolarity(buildPolarity)
	cfg.ChannelOrder = cmd.ParseChannelOrder(buildOrder)

	threshold, err := cmd.ParseThreshold(buildThreshold)
	if err != nil {
		fmt.Println("Error parsing threshold:", err)
	} else if threshold > 0 {
		cfg.OnThreshold = threshold
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config, using defaults:", err)
		return cmd.DefaultConfig()
	}
	return cfg
}

func main() {

	var uart *machine.UART = machine.UART0

	uart.Configure(machine.UARTConfig{
		BaudRate: 38400,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	logger := slog.New(slog.NewTextHandler(uart, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := loadConfig()
	kind := cmd.ParseSensorKind(buildSensor)

	content, err := cmd.LoadContent(cmd.GhostContent)
	if err != nil {
		fmt.Println("Error loading ghost content:", err)
		// Keep running with black frames so the console stays reachable
		content = &cmd.Content{}
	}

	var sensor cmd.Sensor
	switch kind {
	case cmd.SensorPIR:
		pir, err := cmd.NewPIRSensor(cmd.SensorPIRPin, cfg.Polarity, &cmd.MotionFlag{})
		if err != nil {
			fmt.Println("Error configuring PIR sensor:", err)
		}
		sensor = pir
	default:
		sensor = cmd.NewADCSensor(cmd.SensorADCPin)
	}

	// blink LED based on sensor kind, 2 times for ADC, 5 times for PIR
	blinks := 2
	if kind == cmd.SensorPIR {
		blinks = 5
	}
	for i := 0; i < blinks; i++ {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}

	fan := cmd.NewFanout(cmd.NewStrips(), cfg.ChannelOrder, cfg.Brightness)
	sched := cmd.NewScheduler(cfg, content, fan, logger)
	ctrl := cmd.NewController(cmd.NewMonoClock(0), sensor, sched)

	cmd.RunBoard(ctrl, uart, led)
}
