package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"go.bug.st/serial"

	"nifri2/ghost-lantern/cmd"
)

// SerialSensor follows a board that streams one reading per line, e.g. an
// Arduino printing analogRead values. Lines may be "512", "motion=512" or
// "motion: 512"; anything else is skipped.
type SerialSensor struct {
	port    io.ReadCloser
	reading atomic.Uint32
}

func OpenSerialSensor(path string, baud int) (*SerialSensor, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open sensor port %s: %w", path, err)
	}
	return newSerialSensor(port), nil
}

func newSerialSensor(port io.ReadCloser) *SerialSensor {
	return &SerialSensor{port: port}
}

// Monitor reads lines until the port closes or ctx is cancelled.
func (s *SerialSensor) Monitor(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.port.Close() })
	defer stop()

	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		if v, ok := parseReading(scanner.Text()); ok {
			s.reading.Store(uint32(v))
		}
	}
	if ctx.Err() != nil {
		return nil
	}
	return scanner.Err()
}

func (s *SerialSensor) Read() uint16 {
	return uint16(s.reading.Load())
}

func (s *SerialSensor) Close() error {
	return s.port.Close()
}

func parseReading(line string) (uint16, bool) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, "=:"); i >= 0 {
		line = strings.TrimSpace(line[i+1:])
	}
	v, err := strconv.ParseUint(line, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// KeySensor is motion toggled from the keyboard. It reports levels the way
// a sensor of the configured polarity would, so toggling on always means
// motion. It is only touched by the simulator's main loop.
type KeySensor struct {
	ActiveLow bool
	motion    bool
}

func (k *KeySensor) Toggle() bool {
	k.motion = !k.motion
	return k.motion
}

func (k *KeySensor) Read() uint16 {
	if k.motion != k.ActiveLow {
		return cmd.FullScale
	}
	return 0
}
