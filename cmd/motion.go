package cmd

import (
	"math"
	"sync/atomic"
)

// FullScale is the reading a digital sensor reports for its high level.
const FullScale = math.MaxUint16

// Sensor yields one raw motion reading per poll.
type Sensor interface {
	Read() uint16
}

// MotionFlag carries an edge from an interrupt handler to the control loop.
// Raise is the only thing a handler may do.
type MotionFlag struct {
	v atomic.Bool
}

func (f *MotionFlag) Raise() { f.v.Store(true) }

// Take reports whether the flag was raised since the last Take and clears it.
func (f *MotionFlag) Take() bool { return f.v.Swap(false) }

// LatchSensor reads a digital motion output. A pulse that raised Flag but
// ended before the next poll still reads as motion once.
type LatchSensor struct {
	Level     func() bool
	Flag      *MotionFlag
	ActiveLow bool
}

func (s *LatchSensor) Read() uint16 {
	motion := s.Level() != s.ActiveLow
	if s.Flag != nil && s.Flag.Take() {
		motion = true
	}
	if motion != s.ActiveLow {
		return FullScale
	}
	return 0
}
