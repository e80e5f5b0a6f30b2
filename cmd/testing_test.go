package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// push is one strip write, decoded back into pixels.
type push struct {
	Face   Face
	Pixels Buffer
}

type pushLog struct {
	pushes []push
}

func (l *pushLog) reset() { l.pushes = nil }

func (l *pushLog) faces() []Face {
	faces := make([]Face, len(l.pushes))
	for i, p := range l.pushes {
		faces[i] = p.Face
	}
	return faces
}

// recordStrip decodes and records every write.
type recordStrip struct {
	face  Face
	order ChannelOrder
	log   *pushLog
	fail  bool
}

var errStripGone = errors.New("strip not attached")

func (s *recordStrip) Write(buf []byte) (int, error) {
	if s.fail {
		return 0, errStripGone
	}
	var p Buffer
	for i := range p {
		p[i] = s.order.Unpack(buf[i*3:])
	}
	s.log.pushes = append(s.log.pushes, push{Face: s.face, Pixels: p})
	return len(buf), nil
}

func newRecordFanout(order ChannelOrder) (*Fanout, *pushLog) {
	log := &pushLog{}
	var strips [FaceCount]Strip
	for i := range strips {
		strips[i] = &recordStrip{face: Face(i), order: order, log: log}
	}
	return NewFanout(strips, order, 255), log
}

func loadGhost(t *testing.T) *Content {
	t.Helper()
	c, err := LoadContent(GhostContent)
	require.NoError(t, err)
	return c
}

func newTestScheduler(t *testing.T, cfg Config) (*Scheduler, *pushLog) {
	t.Helper()
	require.NoError(t, cfg.Validate())
	fan, log := newRecordFanout(cfg.ChannelOrder)
	return NewScheduler(cfg, loadGhost(t), fan, nil), log
}
