package main

import (
	"io"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"dscheirer.com/tixclock/ambient"
	"dscheirer.com/tixclock/brightness"
	"dscheirer.com/tixclock/ds3231"
	"dscheirer.com/tixclock/matrix"
)

// openBoard returns the header pins, or the simulated board when running
// simulated or when the pins cannot be opened.
func openBoard(hw hwConfig, logger flogger) board {
	if !hw.simulated {
		rb := &rpioBoard{}
		err := rb.init(hw)
		if err == nil {
			return rb
		}
		logger.Printf("GPIO unavailable, simulating board: %v", err)
	}
	lb := &logBoard{}
	// init of the simulated board cannot fail
	_ = lb.init(hw)
	return lb
}

// openI2C finds the RTC and the light sensor. Anything missing is replaced:
// the system clock for the RTC, a fixed reading for the sensor.
func openI2C(hw hwConfig, clock clockwork.Clock, logger flogger) (timeSource, brightness.Sensor, io.Closer) {
	var src timeSource = wallSource{clock: clock, loc: hw.loc}
	var sensor brightness.Sensor = ambient.Fixed(ambient.RawMax)
	if hw.simulated {
		return src, ambient.Fixed(hw.simLight), nil
	}

	if _, err := host.Init(); err != nil {
		logger.Printf("periph host init: %v", err)
		return src, sensor, nil
	}
	bus, err := i2creg.Open(hw.i2cBus)
	if err != nil {
		logger.Printf("i2c bus %q: %v", hw.i2cBus, err)
		return src, sensor, nil
	}

	rtc := ds3231.New(bus, hw.rtcAddr, hw.loc)
	compiled, err := buildTime()
	if err != nil {
		compiled = clock.Now()
	}
	if last, err := setupRTC(rtc, compiled, &ThreadLogger{name: "RTC"}); err != nil {
		logger.Printf("Couldn't find %s, using system clock: %v", rtc, err)
	} else {
		logger.Printf("%s on i2c bus %s reads %s", rtc, hw.i2cBus, last.Format("Jan 02 2006 15:04:05"))
		src = newRTCSource(rtc, last)
	}

	if adc, err := ambient.Open(bus, hw.adcRef); err != nil {
		logger.Printf("No light sensor, full brightness: %v", err)
	} else {
		sensor = adc
		return src, sensor, multiCloser{adc, bus}
	}
	return src, sensor, bus
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var first error
	for _, c := range mc {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// abandon releases what openI2C and openBoard opened when the runtime
// could not be built.
func abandon(closer io.Closer, b board, logger flogger) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			logger.Printf("close: %v", err)
		}
	}
	b.close()
}

// initRuntime opens whatever hardware is present and wires the display
// engine to it.
func initRuntime(settings configSettings) (runtimeConfig, error) {
	logger := &ThreadLogger{name: "Init"}
	hw, err := hwConfigFromSettings(settings)
	if err != nil {
		return runtimeConfig{}, err
	}

	clock := clockwork.NewRealClock()
	b := openBoard(hw, logger)
	src, sensor, closer := openI2C(hw, clock, logger)

	rt, err := newRuntime(settings, hw, clock, b, src, sensor, matrix.NewDefaultGenerator())
	if err != nil {
		abandon(closer, b, logger)
		return rt, err
	}
	if closer != nil {
		rt.closers = append(rt.closers, closer)
	}

	if lb, ok := b.(*logBoard); ok {
		switch {
		case hw.preview:
			tp, err := newTermPreview(rt.assembler.Layout(), lb.recorder, rt.comms)
			if err != nil {
				logger.Printf("terminal preview: %v", err)
			} else {
				rt.preview = tp
			}
		case hw.debugDump:
			rt.preview = newDumpPreview(rt.assembler.Layout(), lb.recorder)
		}
	}
	return rt, nil
}
