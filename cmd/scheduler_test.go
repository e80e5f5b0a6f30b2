package cmd

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertRunsThirtyFrames(t *testing.T) {
	cfg := DefaultConfig()
	s, log := newTestScheduler(t, cfg)
	content := loadGhost(t)

	s.Start(0)
	s.Trigger(0)
	require.Equal(t, ModeAlert, s.Mode())

	for now := uint32(0); now < 3000; now += 10 {
		s.Tick(now, 0)
		require.Equal(t, ModeAlert, s.Mode(), "t=%d", now)
	}
	require.Len(t, log.pushes, 30*FaceCount)

	var even, odd Buffer
	e, o := content.AlertFrame(0), content.AlertFrame(1)
	even.RenderFrame(e[:]...)
	odd.RenderFrame(o[:]...)
	require.NotEqual(t, even, odd)

	for frame := 0; frame < 30; frame++ {
		want := even
		if frame%2 == 1 {
			want = odd
		}
		for i, face := range AlertOrder {
			p := log.pushes[frame*FaceCount+i]
			assert.Equal(t, face, p.Face, "frame %d push %d", frame, i)
			if diff := cmp.Diff(want, p.Pixels); diff != "" {
				t.Fatalf("frame %d face %s (-want +got):\n%s", frame, face, diff)
			}
		}
	}

	log.reset()
	s.Tick(3000, 0)
	assert.Equal(t, ModeIdleBody, s.Mode())
	assert.Equal(t, BodyOrder[:], log.faces(), "body resumes in the same tick")
}

func TestAlertNotExtendedByRetrigger(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultConfig())
	s.Start(0)

	s.Tick(0, FullScale)
	require.Equal(t, ModeAlert, s.Mode())
	s.Tick(500, 0)
	s.Tick(1000, FullScale)
	assert.True(t, s.Present(), "second rising edge should register")

	// The retrigger still rotates and restarts the rotation timer.
	twice := DefaultPalette
	twice.Rotate()
	twice.Rotate()
	assert.Equal(t, twice, s.Palette())
	assert.EqualValues(t, 31000, s.nextRotate)

	s.Tick(2999, FullScale)
	assert.Equal(t, ModeAlert, s.Mode())
	s.Tick(3000, FullScale)
	assert.Equal(t, ModeIdleBody, s.Mode())

	s.Tick(30000, FullScale)
	assert.Equal(t, twice, s.Palette(), "rotation timer counts from the retrigger")
	s.Tick(31000, FullScale)
	thrice := twice
	thrice.Rotate()
	assert.Equal(t, thrice, s.Palette())
}

func TestEdgeAtAlertStopStartsNewAlert(t *testing.T) {
	s, log := newTestScheduler(t, DefaultConfig())
	s.Start(0)

	s.Tick(0, FullScale)
	require.Equal(t, ModeAlert, s.Mode())
	s.Tick(1000, 0)
	require.False(t, s.Present())

	log.reset()
	s.Tick(3000, FullScale)
	assert.True(t, s.Present())
	assert.Equal(t, ModeAlert, s.Mode())
	assert.Equal(t, AlertOrder[:], log.faces(), "new alert renders its first frame")
	assert.Equal(t, 1, s.Status().AlertStep)

	s.Tick(5999, FullScale)
	assert.Equal(t, ModeAlert, s.Mode())
	s.Tick(6000, FullScale)
	assert.Equal(t, ModeIdleBody, s.Mode())
}

func TestBodyFlipsPairAfterTenTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BodyPeriod = 100
	cfg.RepsPerPair = 5
	s, log := newTestScheduler(t, cfg)
	s.Start(0)

	for tick := 0; tick < 9; tick++ {
		s.Tick(uint32(tick*100), 0)
		require.EqualValues(t, 0, s.Status().Body.Pair, "tick %d", tick)
	}
	assert.EqualValues(t, 1, s.Status().Body.Step)
	assert.EqualValues(t, 4, s.Status().Body.Reps)

	s.Tick(900, 0)
	st := s.Status()
	assert.EqualValues(t, 1, st.Body.Pair)
	assert.EqualValues(t, 0, st.Body.Step)
	assert.Zero(t, st.Body.Reps)
	assert.Equal(t, 2, st.Body.Frame())
	assert.Len(t, log.pushes, 10*FaceCount)
}

func TestBodyOnlyRendersWhenDue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BodyPeriod = 100
	s, log := newTestScheduler(t, cfg)
	s.Start(0)

	for now := uint32(0); now < 300; now += 10 {
		s.Tick(now, 0)
	}
	assert.Len(t, log.pushes, 3*FaceCount)
}

func TestBodyFramesUseFaceColors(t *testing.T) {
	s, log := newTestScheduler(t, DefaultConfig())
	content := loadGhost(t)
	s.Start(0)
	s.Tick(0, 0)

	require.Equal(t, BodyOrder[:], log.faces())
	for _, p := range log.pushes {
		var want Buffer
		layers := content.BodyFrame(1, DefaultPalette[p.Face])
		want.RenderFrame(layers[:]...)
		if diff := cmp.Diff(want, p.Pixels); diff != "" {
			t.Errorf("face %s (-want +got):\n%s", p.Face, diff)
		}
	}
}

func TestIdleRotation(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultConfig())
	s.Start(0)

	s.Tick(29999, 0)
	assert.Equal(t, DefaultPalette, s.Palette())

	s.Tick(30000, 0)
	want := DefaultPalette
	want.Rotate()
	assert.Equal(t, want, s.Palette())
}

func TestRisingEdgeResetsRotationTimer(t *testing.T) {
	s, _ := newTestScheduler(t, DefaultConfig())
	s.Start(0)

	s.Tick(20000, FullScale)
	once := DefaultPalette
	once.Rotate()
	require.Equal(t, once, s.Palette(), "motion rotates immediately")

	s.Tick(30000, 0)
	assert.Equal(t, once, s.Palette(), "periodic rotation was pushed out")

	s.Tick(49999, 0)
	assert.Equal(t, once, s.Palette())

	s.Tick(50000, 0)
	twice := once
	twice.Rotate()
	assert.Equal(t, twice, s.Palette())
}

func TestSchedulerAcrossClockWrap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BodyPeriod = 100
	s, log := newTestScheduler(t, cfg)

	start := uint32(math.MaxUint32 - 150)
	s.Start(start)
	for off := uint32(0); off < 300; off += 10 {
		s.Tick(start+off, 0)
	}
	assert.Len(t, log.pushes, 3*FaceCount)

	log.reset()
	s.Trigger(start + 300)
	for off := uint32(300); off < 3300; off += 10 {
		s.Tick(start+off, 0)
	}
	assert.Len(t, log.pushes, 30*FaceCount)
	s.Tick(start+3300, 0)
	assert.Equal(t, ModeIdleBody, s.Mode())
}

func TestSchedulerWithoutContent(t *testing.T) {
	fan, log := newRecordFanout(GRB)
	s := NewScheduler(DefaultConfig(), nil, fan, nil)
	s.Start(0)
	s.Tick(0, 0)

	require.Len(t, log.pushes, FaceCount)
	for _, p := range log.pushes {
		assert.Equal(t, Buffer{}, p.Pixels)
	}
}
