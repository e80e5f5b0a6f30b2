//go:build rpi

package main

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"

	"nifri2/ghost-lantern/cmd"
)

// ChainOutput drives all four faces as consecutive segments of one ws281x
// chain on a Raspberry Pi. The library handles the strip's own byte order,
// so the fan-out must encode RGB.
type ChainOutput struct {
	dev *ws2811.WS2811
}

func OpenChainOutput(gpio int) (*ChainOutput, error) {
	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = gpio
	opt.Channels[0].Brightness = 255 // the fan-out scales
	opt.Channels[0].LedCount = cmd.FaceCount * cmd.PixelCount

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("makeWS2811 failed: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("init failed: %w", err)
	}
	return &ChainOutput{dev: dev}, nil
}

func (o *ChainOutput) Strips() [cmd.FaceCount]cmd.Strip {
	var strips [cmd.FaceCount]cmd.Strip
	for i := range strips {
		strips[i] = &chainSegment{out: o, face: cmd.Face(i)}
	}
	return strips
}

func (o *ChainOutput) Close() {
	o.dev.Fini()
}

type chainSegment struct {
	out  *ChainOutput
	face cmd.Face
}

func (s *chainSegment) Write(buf []byte) (int, error) {
	leds := s.out.dev.Leds(0)
	base := int(s.face) * cmd.PixelCount
	for i := 0; i < cmd.PixelCount && i*3+2 < len(buf) && base+i < len(leds); i++ {
		c := cmd.RGB.Unpack(buf[i*3:])
		leds[base+i] = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
	if err := s.out.dev.Render(); err != nil {
		return 0, err
	}
	return len(buf), nil
}
