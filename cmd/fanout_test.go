package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelOrderPack(t *testing.T) {
	c := Color{R: 1, G: 2, B: 3}
	cases := []struct {
		order ChannelOrder
		want  [3]byte
	}{
		{GRB, [3]byte{2, 1, 3}},
		{RGB, [3]byte{1, 2, 3}},
		{BRG, [3]byte{3, 1, 2}},
		{BGR, [3]byte{3, 2, 1}},
		{RBG, [3]byte{1, 3, 2}},
		{GBR, [3]byte{2, 3, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.order.String(), func(t *testing.T) {
			var got [3]byte
			tc.order.Pack(got[:], c)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, c, tc.order.Unpack(got[:]))
		})
	}
}

func TestFanoutScalesBrightness(t *testing.T) {
	log := &pushLog{}
	strips := [FaceCount]Strip{Front: &recordStrip{face: Front, order: RGB, log: log}}
	fan := NewFanout(strips, RGB, 128)

	var b Buffer
	b[0] = Color{R: 255, G: 100, B: 0}
	fan.Publish(&b, Front)

	require.Len(t, log.pushes, 1)
	assert.Equal(t, Color{R: 128, G: 50, B: 0}, log.pushes[0].Pixels[0])
	assert.Equal(t, Color{R: 255, G: 100, B: 0}, b[0], "publish must not touch the buffer")
}

func TestFanoutCountsFailures(t *testing.T) {
	log := &pushLog{}
	strips := [FaceCount]Strip{
		Front: &recordStrip{face: Front, log: log},
		Right: &recordStrip{face: Right, log: log, fail: true},
	}
	fan := NewFanout(strips, GRB, 255)

	var b Buffer
	for _, face := range AlertOrder {
		fan.Publish(&b, face)
	}
	fan.Publish(&b, Face(9))

	assert.Equal(t, []Face{Front}, log.faces())
	assert.EqualValues(t, 2, fan.Pushes())
	assert.EqualValues(t, 1, fan.Failures())
}
