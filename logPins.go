package main

import (
	"fmt"

	"dscheirer.com/tixclock/matrix"
	"dscheirer.com/tixclock/shiftreg"
)

// logBoard stands in for the header pins: the shift registers and cathodes
// are simulated and every brightness change lands in an audit trail.
type logBoard struct {
	recorder   *shiftreg.Recorder
	duty       uint8
	audit      []string
	disableLog bool
	logger     flogger
}

func (lb *logBoard) init(hw hwConfig) error {
	lb.recorder = shiftreg.NewRecorder()
	lb.audit = make([]string, 0)
	lb.logger = &ThreadLogger{name: "Board"}
	if !lb.disableLog {
		lb.logger.Printf("Simulated board, %d cathode lines", len(hw.cathodePins))
	}
	return nil
}

func (lb *logBoard) busPins() shiftreg.Pins {
	return lb.recorder.Pins()
}

func (lb *logBoard) SetDuty(duty uint8) error {
	if duty != lb.duty && !lb.disableLog {
		lb.logger.Printf("Set brightness to %v", duty)
	}
	lb.duty = duty
	lb.audit = append(lb.audit, fmt.Sprintf("Set brightness to %v", duty))
	return nil
}

func (lb *logBoard) close() {}

// dumpPreview writes the accumulated image to the log whenever it changes.
type dumpPreview struct {
	layout   matrix.Layout
	recorder *shiftreg.Recorder
	last     string
	logger   flogger
}

func newDumpPreview(layout matrix.Layout, recorder *shiftreg.Recorder) *dumpPreview {
	return &dumpPreview{
		layout:   layout,
		recorder: recorder,
		logger:   &ThreadLogger{name: "Dump"},
	}
}

func (dp *dumpPreview) refresh(duty uint8) {
	dump := dp.layout.Dump(dp.recorder.Image())
	dp.recorder.Reset()
	if dump == dp.last {
		return
	}
	dp.last = dump
	dp.logger.Printf("brightness %d\n%s", duty, dump)
}

func (dp *dumpPreview) close() {}
