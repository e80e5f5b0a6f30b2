package main

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// AlertTone plays a short falling "boo" when an alert starts.
type AlertTone struct {
	rate beep.SampleRate
}

func NewAlertTone() (*AlertTone, error) {
	rate := beep.SampleRate(44100)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &AlertTone{rate: rate}, nil
}

func (a *AlertTone) Play() {
	high, err := generators.SineTone(a.rate, 660)
	if err != nil {
		return
	}
	low, err := generators.SineTone(a.rate, 330)
	if err != nil {
		return
	}
	speaker.Play(beep.Seq(
		beep.Take(a.rate.N(120*time.Millisecond), high),
		beep.Take(a.rate.N(280*time.Millisecond), low),
	))
}
