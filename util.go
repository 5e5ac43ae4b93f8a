// utility functions
package main

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"

	"dscheirer.com/tixclock/brightness"
	"dscheirer.com/tixclock/matrix"
	"dscheirer.com/tixclock/shiftreg"
)

type commChannels struct {
	quit chan struct{}
	once *sync.Once
}

func initCommChannels() commChannels {
	return commChannels{
		quit: make(chan struct{}),
		once: &sync.Once{},
	}
}

// stop may be called from several places (signal, preview keys)
func (c commChannels) stop() {
	c.once.Do(func() { close(c.quit) })
}

// hwConfig is read from settings once at startup and never changes.
type hwConfig struct {
	dataPin     int
	clockPin    int
	latchPin    int
	cathodePins [2 * matrix.FrameRows]int
	pwmPin      int
	pwmClock    int
	i2cBus      string
	rtcAddr     uint16
	adcRef      physic.ElectricPotential
	loc         *time.Location
	simulated   bool
	simLight    int
	preview     bool
	debugDump   bool
	framePeriod time.Duration
}

func hwConfigFromSettings(s configSettings) (hwConfig, error) {
	hw := hwConfig{
		dataPin:     s.GetInt(sDataPin),
		clockPin:    s.GetInt(sClockPin),
		latchPin:    s.GetInt(sLatchPin),
		pwmPin:      s.GetInt(sPWMPin),
		pwmClock:    s.GetInt(sPWMClock),
		i2cBus:      s.GetString(sI2CBus),
		rtcAddr:     uint16(s.GetByte(sRTCAddr)),
		adcRef:      physic.ElectricPotential(s.GetFloat(sADCRef) * float64(physic.Volt)),
		simulated:   s.GetBool(sSimulated),
		simLight:    s.GetInt(sSimLight),
		preview:     s.GetBool(sPreview),
		debugDump:   s.GetBool(sDebug),
		framePeriod: s.GetDuration(sFramePeriod),
	}

	cathodes := s.GetInts(sCathodePins)
	if len(cathodes) != len(hw.cathodePins) {
		return hw, errors.Errorf("%s needs %d pins, got %d", sCathodePins, len(hw.cathodePins), len(cathodes))
	}
	copy(hw.cathodePins[:], cathodes)

	if hw.framePeriod < 0 {
		hw.framePeriod = 0
	}

	hw.loc = time.Local
	if tz := s.GetString(sTimeZone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return hw, errors.Wrapf(err, "%s %q", sTimeZone, tz)
		}
		hw.loc = loc
	}
	return hw, nil
}

type runtimeConfig struct {
	settings  configSettings
	hw        hwConfig
	comms     commChannels
	clock     clockwork.Clock
	logger    flogger
	board     board
	source    timeSource
	assembler *matrix.Assembler
	driver    *shiftreg.Driver
	sampler   *brightness.Sampler
	preview   previewer
	closers   []io.Closer
}

// newRuntime wires the display engine to whatever board, time source and
// light sensor the caller opened.
func newRuntime(settings configSettings, hw hwConfig, clock clockwork.Clock, b board,
	src timeSource, sensor brightness.Sensor, gen *matrix.Generator) (runtimeConfig, error) {
	rt := runtimeConfig{
		settings: settings,
		hw:       hw,
		comms:    initCommChannels(),
		clock:    clock,
		logger:   &ThreadLogger{name: "Display"},
		board:    b,
		source:   src,
	}

	layout := matrix.DefaultLayout
	if err := layout.Validate(); err != nil {
		return rt, errors.Wrap(err, "bad matrix layout")
	}
	gen.SetLogger(rt.logger)
	rt.assembler = matrix.NewAssembler(layout, gen)

	driver, err := shiftreg.NewDriver(b.busPins())
	if err != nil {
		return rt, err
	}
	rt.driver = driver
	paceRows(driver, clock, hw.framePeriod)

	rt.sampler = brightness.New(sensor, b, brightness.DefaultEvery)
	rt.sampler.SetLogger(&ThreadLogger{name: "Brightness"})
	return rt, nil
}

func (rt runtimeConfig) close() {
	if rt.preview != nil {
		rt.preview.close()
	}
	for _, c := range rt.closers {
		if err := c.Close(); err != nil {
			rt.logger.Printf("close: %v", err)
		}
	}
	if rt.board != nil {
		rt.board.close()
	}
}

// buildTime is when the running binary was written
func buildTime() (time.Time, error) {
	info, err := os.Stat(os.Args[0])
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
