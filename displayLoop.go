package main

import (
	"time"

	"github.com/jonboulle/clockwork"

	"dscheirer.com/tixclock/matrix"
	"dscheirer.com/tixclock/shiftreg"
)

const (
	// frames the startup banner stays up
	bannerFrames = 5000
	// frames one random time pattern stays up before it is regenerated
	timeFrames = 3000
)

// paceRows spreads period over the rows of a frame, slept while each row
// is lit. A period of 0 renders flat out.
func paceRows(d *shiftreg.Driver, clock clockwork.Clock, period time.Duration) {
	if period <= 0 {
		d.SetRowHold(nil)
		return
	}
	hold := period / matrix.FrameRows
	d.SetRowHold(func() { clock.Sleep(hold) })
}

func quitting(rt runtimeConfig) bool {
	select {
	case <-rt.comms.quit:
		return true
	default:
		return false
	}
}

// renderFrames multiplexes one frame n times. The brightness sampler runs
// on its own cadence inside the loop; pacing happens in the driver's row
// hold. Returns false when asked to quit.
func renderFrames(rt runtimeConfig, frame matrix.Frame, n int) bool {
	for i := 0; i < n; i++ {
		if rt.sampler.Tick(i) {
			if quitting(rt) {
				return false
			}
			if rt.preview != nil {
				rt.preview.refresh(rt.sampler.Duty())
			}
		}
		rt.driver.RenderFrame(frame)
	}
	return true
}

func showStartupBanner(rt runtimeConfig) bool {
	rt.logger.Println("Startup banner")
	return renderFrames(rt, matrix.BannerFrame, bannerFrames)
}

// displayCycle reads the clock once and builds a fresh random frame for it.
func displayCycle(rt runtimeConfig) matrix.Frame {
	hour, minute := currentTime(rt)
	return rt.assembler.Assemble(hour, minute)
}

func runDisplay(rt runtimeConfig) {
	defer rt.driver.Blank()

	rt.driver.Blank()
	if !showStartupBanner(rt) {
		rt.logger.Println("Quit during banner")
		return
	}

	for !quitting(rt) {
		frame := displayCycle(rt)
		if !renderFrames(rt, frame, timeFrames) {
			break
		}
	}
	rt.logger.Println("Display stopped")
}
