package cmd

import "math"

// Debouncer turns a noisy motion reading into a presence level using two
// thresholds. It only rises at or above on and only falls at or below off.
type Debouncer struct {
	on, off  uint16
	polarity Polarity
	present  bool
}

// NewDebouncer derives the off threshold from on. minGap is floored at 1 and
// on is raised to 1, so off < on always holds.
func NewDebouncer(on, minGap uint16, polarity Polarity) *Debouncer {
	if on == 0 {
		on = 1
	}
	if minGap == 0 {
		minGap = 1
	}
	return &Debouncer{
		on:       on,
		off:      offThreshold(on, minGap),
		polarity: polarity,
	}
}

func offThreshold(on, minGap uint16) uint16 {
	gap := on / 3
	if minGap > gap {
		gap = minGap
	}
	if gap >= on {
		return 0
	}
	return on - gap
}

// Update feeds one reading and reports the new level and any edge.
func (d *Debouncer) Update(reading uint16) (present, rising, falling bool) {
	level := reading
	if d.polarity == ActiveLow {
		level = math.MaxUint16 - reading
	}
	switch {
	case !d.present && level >= d.on:
		d.present = true
		rising = true
	case d.present && level <= d.off:
		d.present = false
		falling = true
	}
	return d.present, rising, falling
}

func (d *Debouncer) Present() bool        { return d.present }
func (d *Debouncer) OnThreshold() uint16  { return d.on }
func (d *Debouncer) OffThreshold() uint16 { return d.off }
