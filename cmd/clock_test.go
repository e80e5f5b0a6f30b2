package cmd

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueAcrossWrap(t *testing.T) {
	start := uint32(math.MaxUint32 - 5)
	deadline := start + 10 // wraps to 4

	assert.EqualValues(t, 4, deadline)
	assert.False(t, Due(start, deadline))
	assert.False(t, Due(math.MaxUint32, deadline))
	assert.False(t, Due(0, deadline))
	assert.False(t, Due(3, deadline))
	assert.True(t, Due(4, deadline))
	assert.True(t, Due(5, deadline))
	assert.True(t, Due(1000, deadline))
}

func TestDueNearMax(t *testing.T) {
	deadline := uint32(math.MaxUint32 - 1)

	assert.False(t, Due(math.MaxUint32-3, deadline))
	assert.True(t, Due(math.MaxUint32-1, deadline))
	assert.True(t, Due(math.MaxUint32, deadline))
	assert.True(t, Due(0, deadline))
	assert.True(t, Due(2, deadline))
}

func TestMonoClockWraps(t *testing.T) {
	c := &MonoClock{start: time.Now().Add(-20 * time.Millisecond), offset: math.MaxUint32 - 5}
	now := c.Millis()
	assert.Less(t, now, uint32(1000), "clock should have wrapped past zero")
	assert.True(t, Due(now, math.MaxUint32-5))
}
