package main

import (
	"time"
)

type rtcController interface {
	rtcDevice
	SetTime(t time.Time) error
	IsRunning() (bool, error)
	SetRunning(on bool) error
	Enable32kHz(on bool) error
	SetSquareWaveNone() error
}

// setupRTC brings the RTC to a known state at startup: a clock that lost
// its time or lags behind the build gets the build time, a stopped
// oscillator is started, and both the 32kHz and square wave pins go quiet.
// It returns the time the RTC holds afterwards.
func setupRTC(dev rtcController, compiled time.Time, logger flogger) (time.Time, error) {
	compiled = compiled.Truncate(time.Second)

	valid, err := dev.IsDateTimeValid()
	if err != nil {
		return time.Time{}, err
	}
	if !valid {
		logger.Println("RTC lost confidence in the DateTime!")
		if err := dev.SetTime(compiled); err != nil {
			return time.Time{}, err
		}
	}

	running, err := dev.IsRunning()
	if err != nil {
		return time.Time{}, err
	}
	if !running {
		logger.Println("RTC was not actively running, starting now")
		if err := dev.SetRunning(true); err != nil {
			return time.Time{}, err
		}
	}

	now, err := dev.Now()
	if err != nil {
		return time.Time{}, err
	}
	switch {
	case now.Before(compiled):
		logger.Println("RTC is older than compile time!  (Updating DateTime)")
		if err := dev.SetTime(compiled); err != nil {
			return time.Time{}, err
		}
		now = compiled
	case now.After(compiled):
		logger.Println("RTC is newer than compile time. (this is expected)")
	default:
		logger.Println("RTC is the same as compile time! (not expected but all is fine)")
	}

	if err := dev.Enable32kHz(false); err != nil {
		return time.Time{}, err
	}
	if err := dev.SetSquareWaveNone(); err != nil {
		return time.Time{}, err
	}
	return now, nil
}
