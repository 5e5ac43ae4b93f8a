package main

import (
	"time"

	"dscheirer.com/tixclock/shiftreg"
)

type timeSource interface {
	Now() (time.Time, error)
}

type board interface {
	init(hw hwConfig) error
	busPins() shiftreg.Pins
	SetDuty(duty uint8) error
	close()
}

type previewer interface {
	refresh(duty uint8)
	close()
}
