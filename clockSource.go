package main

import (
	"time"

	"github.com/jonboulle/clockwork"
)

type rtcDevice interface {
	IsDateTimeValid() (bool, error)
	Now() (time.Time, error)
}

// rtcSource reads the battery backed clock. A failed read falls back to the
// last good time so the display keeps running.
type rtcSource struct {
	dev    rtcDevice
	last   time.Time
	logger flogger
}

// newRTCSource starts from last, the time read when the RTC was set up.
func newRTCSource(dev rtcDevice, last time.Time) *rtcSource {
	return &rtcSource{dev: dev, last: last, logger: &ThreadLogger{name: "RTC"}}
}

// Now logs at most one communications error per read.
func (rs *rtcSource) Now() (time.Time, error) {
	valid, err := rs.dev.IsDateTimeValid()
	if err != nil {
		rs.logger.Printf("RTC communications error: %v", err)
	} else if !valid {
		rs.logger.Println("RTC lost confidence in the DateTime!")
	}
	logged := err != nil

	now, err := rs.dev.Now()
	if err != nil {
		if !logged {
			rs.logger.Printf("RTC communications error: %v", err)
		}
		return rs.last, err
	}
	rs.last = now
	return now, nil
}

// wallSource is the system clock, used when no RTC answers.
type wallSource struct {
	clock clockwork.Clock
	loc   *time.Location
}

func (ws wallSource) Now() (time.Time, error) {
	return ws.clock.Now().In(ws.loc), nil
}

func currentTime(rt runtimeConfig) (hour, minute int) {
	now, _ := rt.source.Now()
	return now.Hour(), now.Minute()
}
