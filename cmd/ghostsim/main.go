// Command ghostsim runs the lantern's control loop on a desktop. The four
// faces are drawn in the terminal (or on a Raspberry Pi ws281x chain) and
// motion comes from the keyboard or a serial sensor board.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"nifri2/ghost-lantern/cmd"
)

const keyHelp = "space: toggle motion  t: trigger  r: rotate  q: quit"

type options struct {
	configPath string
	serialPath string
	baud       int
	output     string
	gpio       int
	sound      bool
	logPath    string
	wrap       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a JSON tuning file")
	flag.StringVar(&opts.serialPath, "serial", "", "serial port streaming sensor readings (keyboard motion when empty)")
	flag.IntVar(&opts.baud, "baud", 115200, "serial baud rate")
	flag.StringVar(&opts.output, "output", "terminal", "face output: terminal or ws281x")
	flag.IntVar(&opts.gpio, "gpio", 18, "ws281x data pin")
	flag.BoolVar(&opts.sound, "sound", false, "play a tone when an alert starts")
	flag.StringVar(&opts.logPath, "log", "", "write debug logs to this file")
	flag.BoolVar(&opts.wrap, "wrap", false, "start the clock ten seconds before it wraps")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "ghostsim:", err)
		os.Exit(1)
	}
}

func newLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func loadConfig(path, output string) (cmd.Config, error) {
	cfg := cmd.DefaultConfig()
	sim := &SimConfig{}
	if path != "" {
		var err error
		if sim, err = LoadSimConfig(path); err != nil {
			return cfg, err
		}
		if cfg, err = sim.CoreConfig(); err != nil {
			return cfg, err
		}
	}
	switch output {
	case "terminal":
		// Terminal cells are not LEDs; show full colors unless asked otherwise.
		if sim.Brightness == nil {
			cfg.Brightness = 255
		}
	case "ws281x":
		cfg.ChannelOrder = cmd.RGB
	default:
		return cfg, fmt.Errorf("unknown output %q", output)
	}
	return cfg, nil
}

func run(opts options) error {
	logger, logFile, err := newLogger(opts.logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	cfg, err := loadConfig(opts.configPath, opts.output)
	if err != nil {
		return err
	}

	content, err := cmd.LoadContent(cmd.GhostContent)
	if err != nil {
		return fmt.Errorf("load ghost content: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	faces := NewTerminalFaces(screen, cfg.ChannelOrder)
	strips := faces.Strips()
	if opts.output == "ws281x" {
		chain, err := OpenChainOutput(opts.gpio)
		if err != nil {
			return err
		}
		defer chain.Close()
		strips = chain.Strips()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys := &KeySensor{ActiveLow: cfg.Polarity == cmd.ActiveLow}
	var sensor cmd.Sensor = keys
	if opts.serialPath != "" {
		serialSensor, err := OpenSerialSensor(opts.serialPath, opts.baud)
		if err != nil {
			return err
		}
		defer serialSensor.Close()
		go func() {
			if err := serialSensor.Monitor(ctx); err != nil {
				logger.Error("sensor port closed", "err", err)
			}
		}()
		sensor = serialSensor
	}

	var tone *AlertTone
	if opts.sound {
		if tone, err = NewAlertTone(); err != nil {
			// Non-fatal, the lantern runs without sound
			logger.Warn("audio disabled", "err", err)
		}
	}

	var offset uint32
	if opts.wrap {
		offset = math.MaxUint32 - 10000
	}

	fan := cmd.NewFanout(strips, cfg.ChannelOrder, cfg.Brightness)
	sched := cmd.NewScheduler(cfg, content, fan, logger)
	ctrl := cmd.NewController(cmd.NewMonoClock(offset), sensor, sched)
	ctrl.Start()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	loop := time.NewTicker(2 * time.Millisecond)
	defer loop.Stop()
	draw := time.NewTicker(33 * time.Millisecond)
	defer draw.Stop()

	reply := ""
	faces.DrawHelp(keyHelp)
	for {
		select {
		case ev := <-events:
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				if _, resized := ev.(*tcell.EventResize); resized {
					screen.Sync()
				}
				continue
			}
			switch {
			case key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC:
				return nil
			case key.Key() != tcell.KeyRune:
			case key.Rune() == 'q':
				return nil
			case key.Rune() == ' ' && sensor == keys:
				reply = fmt.Sprintf("keyboard motion %t", keys.Toggle())
			case key.Rune() == 't':
				reply = ctrl.Exec("trigger")
			case key.Rune() == 'r':
				reply = ctrl.Exec("rotate")
			}

		case <-loop.C:
			before := sched.Mode()
			ctrl.Step()
			if tone != nil && before != cmd.ModeAlert && sched.Mode() == cmd.ModeAlert {
				tone.Play()
			}

		case <-draw.C:
			faces.DrawStatus(cmd.FormatStatus(sched.Status()) + "  " + reply)
			screen.Show()
		}
	}
}
