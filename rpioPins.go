package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"

	"dscheirer.com/tixclock/shiftreg"
)

// rpioBoard drives the shift registers and cathodes from the Pi header.
type rpioBoard struct {
	pins  shiftreg.Pins
	pwm   rpio.Pin
	isPWM bool
}

func (rb *rpioBoard) init(hw hwConfig) error {
	if err := rpio.Open(); err != nil {
		return errors.Wrap(err, "rpio open")
	}

	output := func(num int) rpio.Pin {
		pin := rpio.Pin(num)
		pin.Output()
		pin.Low()
		return pin
	}

	rb.pins.Data = output(hw.dataPin)
	rb.pins.Clock = output(hw.clockPin)
	rb.pins.Latch = output(hw.latchPin)
	for i, num := range hw.cathodePins {
		pin := output(num)
		// cathodes sink current, HIGH is off
		pin.High()
		rb.pins.Cathodes[i] = pin
	}

	rb.pwm = rpio.Pin(hw.pwmPin)
	rb.pwm.Mode(rpio.Pwm)
	rb.pwm.Freq(hw.pwmClock)
	rb.isPWM = true
	return rb.SetDuty(0)
}

func (rb *rpioBoard) busPins() shiftreg.Pins {
	return rb.pins
}

func (rb *rpioBoard) SetDuty(duty uint8) error {
	if !rb.isPWM {
		return errors.New("pwm pin not initialized")
	}
	rb.pwm.DutyCycle(uint32(duty), 255)
	return nil
}

func (rb *rpioBoard) close() {
	if rb.isPWM {
		rb.pwm.DutyCycle(0, 255)
	}
	if err := rpio.Close(); err != nil {
		(&ThreadLogger{name: "Board"}).Printf("rpio close: %v", err)
	}
}
