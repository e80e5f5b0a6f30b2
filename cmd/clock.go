package cmd

import "time"

// Due reports whether now has reached deadline on a wrapping millisecond
// clock. Both values must be within 2^31 ms of each other.
func Due(now, deadline uint32) bool {
	return int32(now-deadline) >= 0
}

// Clock is the control loop's time source.
type Clock interface {
	Millis() uint32
}

// MonoClock counts milliseconds since it was created, starting from an
// offset, and wraps at 2^32.
type MonoClock struct {
	start  time.Time
	offset uint32
}

func NewMonoClock(offset uint32) *MonoClock {
	return &MonoClock{start: time.Now(), offset: offset}
}

func (c *MonoClock) Millis() uint32 {
	return c.offset + uint32(time.Since(c.start)/time.Millisecond)
}
