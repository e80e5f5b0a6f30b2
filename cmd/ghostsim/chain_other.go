//go:build !rpi

package main

import (
	"errors"

	"nifri2/ghost-lantern/cmd"
)

var errNoChain = errors.New("ws281x output needs a build with -tags rpi")

type ChainOutput struct{}

func OpenChainOutput(gpio int) (*ChainOutput, error) {
	return nil, errNoChain
}

func (o *ChainOutput) Strips() [cmd.FaceCount]cmd.Strip {
	return [cmd.FaceCount]cmd.Strip{}
}

func (o *ChainOutput) Close() {}
