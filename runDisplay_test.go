package main

import (
	"testing"
	"time"

	"gotest.tools/assert"

	"dscheirer.com/tixclock/matrix"
)

func TestStartupBanner(t *testing.T) {
	rt, _, lb := testRuntime()

	assert.Assert(t, showStartupBanner(rt))
	assert.Equal(t, lb.recorder.Image(), matrix.BannerFrame)
	assert.Equal(t, lb.recorder.Ghosts(), 0)
	// nothing stays lit between rows
	assert.Equal(t, lb.recorder.Enabled(), 0)
}

func TestDisplayCycle(t *testing.T) {
	rt, clock, lb := testRuntime()

	for _, tc := range []struct {
		at  time.Time
		lit int
	}{
		{testStart, 1 + 4 + 0 + 7},
		{time.Date(2026, 10, 19, 23, 59, 0, 0, time.UTC), 2 + 3 + 5 + 9},
		{time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), 0},
	} {
		clock.Advance(tc.at.Sub(clock.Now()))
		frame := displayCycle(rt)
		assert.Equal(t, frame.Lit(), tc.lit, tc.at.String())

		lb.recorder.Reset()
		assert.Assert(t, renderFrames(rt, frame, 1))
		assert.Equal(t, lb.recorder.Image(), frame)
	}
	assert.Equal(t, lb.recorder.Ghosts(), 0)
}

func TestDisplayCycleRandomizes(t *testing.T) {
	rt, _, _ := testRuntime()

	first := displayCycle(rt)
	changed := false
	for i := 0; i < 20 && !changed; i++ {
		next := displayCycle(rt)
		assert.Equal(t, next.Lit(), first.Lit())
		changed = next != first
	}
	assert.Assert(t, changed, "pattern never changed")
}

func TestBrightnessApplied(t *testing.T) {
	rt, _, lb := testRuntime()

	assert.Assert(t, renderFrames(rt, matrix.BannerFrame, 1000))
	// sampled at 0 and 500
	assert.Equal(t, len(lb.audit), 2)
	assert.Equal(t, lb.audit[0], "Set brightness to 127")
	assert.Equal(t, lb.duty, uint8(127))
}

func TestRunDisplayQuitEarly(t *testing.T) {
	rt, _, lb := testRuntime()
	rt.comms.stop()

	runDisplay(rt)

	assert.Equal(t, lb.recorder.Image(), matrix.Frame{})
	assert.Equal(t, lb.recorder.Enabled(), 0)
	// blank on the way in and on the way out
	assert.Equal(t, lb.recorder.Latches(), 2)
}

// stoppingSource asks the display to quit on the read after limit
type stoppingSource struct {
	rt    *runtimeConfig
	src   timeSource
	reads int
	limit int
}

func (ss *stoppingSource) Now() (time.Time, error) {
	ss.reads++
	if ss.reads > ss.limit {
		ss.rt.comms.stop()
	}
	return ss.src.Now()
}

func TestRunDisplayStops(t *testing.T) {
	rt, _, lb := testRuntime()
	ss := &stoppingSource{rt: &rt, src: rt.source, limit: 1}
	rt.source = ss

	done := make(chan struct{})
	go func() {
		runDisplay(rt)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Minute):
		t.Fatal("display never stopped")
	}

	assert.Equal(t, ss.reads, 2)
	assert.Equal(t, lb.recorder.Enabled(), 0)
	assert.Equal(t, lb.recorder.Ghosts(), 0)
	assert.Equal(t, lb.recorder.Chain().Outputs()[0], byte(0))
	assert.Equal(t, lb.recorder.Chain().Outputs()[1], byte(0))
}

func TestFramePacing(t *testing.T) {
	rt, clock, lb := testRuntime()
	paceRows(rt.driver, clock, 3*time.Millisecond)

	done := make(chan bool)
	go func() {
		done <- renderFrames(rt, matrix.BannerFrame, 2)
	}()

	// one hold per row, each with the row lit
	for i := 0; i < 2*matrix.FrameRows; i++ {
		clock.BlockUntil(1)
		assert.Equal(t, lb.recorder.Enabled(), 2)
		clock.Advance(time.Millisecond)
	}
	assert.Assert(t, <-done)
	assert.Equal(t, lb.recorder.Enabled(), 0)
	assert.Equal(t, lb.recorder.Image(), matrix.BannerFrame)
}

func TestFramePacingOff(t *testing.T) {
	rt, clock, _ := testRuntime()
	paceRows(rt.driver, clock, 0)

	// no sleeper, so this returns without touching the clock
	assert.Assert(t, renderFrames(rt, matrix.BannerFrame, 10))
}

func TestPreviewRefresh(t *testing.T) {
	rt, _, lb := testRuntime()
	dp := newDumpPreview(rt.assembler.Layout(), lb.recorder)
	cl := &captureLogger{}
	dp.logger = cl
	rt.preview = dp

	assert.Assert(t, renderFrames(rt, matrix.BannerFrame, 1001))
	// refreshed at 0, 500 and 1000: a dark board, then the banner once
	assert.Equal(t, len(cl.lines), 2)
	assert.Assert(t, cl.contains(rt.assembler.Layout().Dump(matrix.BannerFrame)))
}
