package cmd

import (
	"errors"
	"fmt"
)

// Face is one of the four physical LED panels of the lantern.
type Face uint8

const (
	Front Face = 0x00 + iota
	Right
	Back
	Left
)

const FaceCount = 4

var faceNames = [FaceCount]string{"front", "right", "back", "left"}

func (f Face) String() string {
	if int(f) < FaceCount {
		return faceNames[f]
	}
	return fmt.Sprintf("face(%d)", uint8(f))
}

// Panel geometry. Content indices are row-major on a 16x16 panel.
const (
	PanelWidth  = 16
	PanelHeight = 16
	PixelCount  = PanelWidth * PanelHeight
)

// Color is an RGB triple. Wire order is decided by the fan-out.
type Color struct {
	R, G, B uint8
}

var (
	Black   = Color{}
	White   = Color{R: 255, G: 255, B: 255}
	Red     = Color{R: 255}
	Magenta = Color{R: 255, B: 255}
	Orange  = Color{R: 255, G: 140}
	Cyan    = Color{G: 255, B: 255}

	EyeWhite   = Color{R: 222, G: 222, B: 255}
	PupilBlue  = Color{R: 33, G: 33, B: 255}
	AlertBlue  = Color{R: 33, G: 33, B: 255}
	AlertFace  = Color{R: 255, G: 184, B: 174}
	AlertWhite = Color{R: 222, G: 222, B: 255}
	AlertFlash = Color{R: 255}
)

// Polarity selects whether a larger raw sensor reading means more motion.
type Polarity uint8

const (
	ActiveHigh Polarity = 0x00 + iota
	ActiveLow
)

func (p Polarity) String() string {
	if p == ActiveLow {
		return "active-low"
	}
	return "active-high"
}

// SensorKind selects the firmware motion sensor front end.
type SensorKind uint8

const (
	SensorADC SensorKind = 0x00 + iota
	SensorPIR
)

// Mode is the scheduler's top-level state.
type Mode uint8

const (
	ModeIdleBody Mode = 0x00 + iota
	ModeAlert
)

func (m Mode) String() string {
	if m == ModeAlert {
		return "alert"
	}
	return "idle-body"
}

// Config holds the startup tunables. Durations are milliseconds on the
// wrapping uint32 clock.
type Config struct {
	OnThreshold uint16
	MinGap      uint16
	Polarity    Polarity

	AlertDuration uint32
	AlertPeriod   uint32
	AlertSteps    int

	BodyPeriod  uint32
	RepsPerPair int

	RotateInterval uint32

	Brightness   uint8
	ChannelOrder ChannelOrder

	// Palette is the starting face color assignment.
	Palette Palette
}

// maxSpan keeps every deadline within the signed half of the clock range,
// otherwise Due cannot tell past from future.
const maxSpan = 1<<31 - 1

var ErrInvalidConfig = errors.New("invalid config")

func DefaultConfig() Config {
	return Config{
		OnThreshold:    32768,
		MinGap:         4,
		Polarity:       ActiveHigh,
		AlertDuration:  3000,
		AlertPeriod:    100,
		AlertSteps:     30,
		BodyPeriod:     250,
		RepsPerPair:    5,
		RotateInterval: 30000,
		Brightness:     40,
		ChannelOrder:   GRB,
		Palette:        DefaultPalette,
	}
}

// Validate reports the first tunable that would break the scheduler.
func (c Config) Validate() error {
	switch {
	case c.OnThreshold == 0:
		return fmt.Errorf("%w: on threshold must be at least 1", ErrInvalidConfig)
	case c.AlertPeriod == 0 || c.BodyPeriod == 0:
		return fmt.Errorf("%w: frame periods must be positive", ErrInvalidConfig)
	case c.AlertDuration == 0 || c.RotateInterval == 0:
		return fmt.Errorf("%w: alert duration and rotate interval must be positive", ErrInvalidConfig)
	case c.AlertSteps < 2:
		return fmt.Errorf("%w: alert steps must be at least 2, got %d", ErrInvalidConfig, c.AlertSteps)
	case c.RepsPerPair < 1:
		return fmt.Errorf("%w: repetitions per pair must be at least 1, got %d", ErrInvalidConfig, c.RepsPerPair)
	case c.ChannelOrder >= channelOrderCount:
		return fmt.Errorf("%w: unknown channel order %d", ErrInvalidConfig, c.ChannelOrder)
	}
	for _, d := range []uint32{c.AlertDuration, c.AlertPeriod, c.BodyPeriod, c.RotateInterval} {
		if d > maxSpan {
			return fmt.Errorf("%w: duration %dms exceeds clock half-range", ErrInvalidConfig, d)
		}
	}
	return nil
}
