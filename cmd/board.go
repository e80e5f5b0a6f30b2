//go:build tinygo

package cmd

import (
	"fmt"
	"machine"
	"time"

	"tinygo.org/x/drivers/ws2812"
)

// Board wiring. One ws2812 panel per face.
var FacePins = [FaceCount]machine.Pin{
	Front: machine.GP2,
	Right: machine.GP3,
	Back:  machine.GP4,
	Left:  machine.GP5,
}

const (
	SensorADCPin = machine.ADC0
	SensorPIRPin = machine.GP15
)

// NewStrips configures each face pin and binds a ws2812 device to it.
func NewStrips() [FaceCount]Strip {
	var strips [FaceCount]Strip
	for face, pin := range FacePins {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		dev := ws2812.New(pin)
		strips[face] = &dev
	}
	return strips
}

// ADCSensor samples an analog motion sensor.
type ADCSensor struct {
	adc machine.ADC
}

func NewADCSensor(pin machine.Pin) *ADCSensor {
	machine.InitADC()
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &ADCSensor{adc: adc}
}

func (s *ADCSensor) Read() uint16 {
	return s.adc.Get()
}

// NewPIRSensor reads a digital PIR output. The pin interrupt only raises
// flag; all decisions happen in the control loop. If the interrupt cannot be
// attached the returned sensor still polls the pin level.
func NewPIRSensor(pin machine.Pin, polarity Polarity, flag *MotionFlag) (*LatchSensor, error) {
	change := machine.PinRising
	mode := machine.PinInputPulldown
	if polarity == ActiveLow {
		change = machine.PinFalling
		mode = machine.PinInputPullup
	}
	pin.Configure(machine.PinConfig{Mode: mode})
	sensor := &LatchSensor{Level: pin.Get, Flag: flag, ActiveLow: polarity == ActiveLow}
	if err := pin.SetInterrupt(change, func(machine.Pin) { flag.Raise() }); err != nil {
		return sensor, fmt.Errorf("pir interrupt: %w", err)
	}
	return sensor, nil
}

// RunBoard is the firmware main loop. It never returns.
func RunBoard(ctrl *Controller, uart *machine.UART, led machine.Pin) {
	fmt.Println("Starting Controller Loop")

	// Configure Watchdog (5s timeout)
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 5000})
	machine.Watchdog.Start()

	ctrl.Start()
	for {
		machine.Watchdog.Update()

		for uart.Buffered() > 0 {
			b, err := uart.ReadByte()
			if err != nil {
				break
			}
			if reply, ok := ctrl.Input(b); ok {
				uart.Write([]byte(reply + "\r\n"))
			}
		}

		ctrl.Step()
		led.Set(ctrl.Scheduler().Present())

		// Yield; every timeline deadline is checked, never slept on.
		time.Sleep(time.Millisecond)
	}
}
