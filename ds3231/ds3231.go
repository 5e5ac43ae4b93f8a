// Package ds3231 reads and sets a Maxim DS3231 real time clock over I2C.
package ds3231

import (
	"time"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
)

// Addr is the fixed bus address of the chip.
const Addr uint16 = 0x68

const (
	regSeconds = 0x00
	regControl = 0x0E
	regStatus  = 0x0F

	ctrlEOSC  = 0x80 // oscillator disabled on battery when set
	ctrlINTCN = 0x04
	ctrlA2IE  = 0x02
	ctrlA1IE  = 0x01

	statusOSF     = 0x80 // oscillator stopped, time is not trustworthy
	statusEN32kHz = 0x08

	hour12   = 0x40
	hourPM   = 0x20
	century  = 0x80
	timeRegs = 7
)

type Dev struct {
	d   i2c.Dev
	loc *time.Location
}

// New talks to the chip at addr on bus. Times are read and written in
// loc, nil meaning time.Local.
func New(bus i2c.Bus, addr uint16, loc *time.Location) *Dev {
	if loc == nil {
		loc = time.Local
	}
	return &Dev{d: i2c.Dev{Bus: bus, Addr: addr}, loc: loc}
}

func (d *Dev) String() string { return "DS3231" }

// IsDateTimeValid reports false once the oscillator has stopped since the
// time was last set.
func (d *Dev) IsDateTimeValid() (bool, error) {
	status, err := d.readReg(regStatus)
	if err != nil {
		return false, err
	}
	return status&statusOSF == 0, nil
}

func (d *Dev) Now() (time.Time, error) {
	r := make([]byte, timeRegs)
	if err := d.d.Tx([]byte{regSeconds}, r); err != nil {
		return time.Time{}, errors.Wrap(err, "ds3231: read time registers")
	}
	return decodeTime(r, d.loc), nil
}

// SetTime writes t and clears the oscillator stop flag.
func (d *Dev) SetTime(t time.Time) error {
	t = t.In(d.loc)
	w := append([]byte{regSeconds}, encodeTime(t)...)
	if err := d.d.Tx(w, nil); err != nil {
		return errors.Wrap(err, "ds3231: write time registers")
	}
	return d.updateReg(regStatus, 0, statusOSF)
}

// IsRunning reports whether the oscillator keeps time on battery.
func (d *Dev) IsRunning() (bool, error) {
	ctrl, err := d.readReg(regControl)
	if err != nil {
		return false, err
	}
	return ctrl&ctrlEOSC == 0, nil
}

func (d *Dev) SetRunning(on bool) error {
	if on {
		return d.updateReg(regControl, 0, ctrlEOSC)
	}
	return d.updateReg(regControl, ctrlEOSC, 0)
}

func (d *Dev) Enable32kHz(on bool) error {
	if on {
		return d.updateReg(regStatus, statusEN32kHz, 0)
	}
	return d.updateReg(regStatus, 0, statusEN32kHz)
}

// SetSquareWaveNone turns the SQW/INT pin off: interrupt mode with both
// alarm interrupts disabled.
func (d *Dev) SetSquareWaveNone() error {
	return d.updateReg(regControl, ctrlINTCN, ctrlA1IE|ctrlA2IE)
}

func (d *Dev) readReg(reg byte) (byte, error) {
	var r [1]byte
	if err := d.d.Tx([]byte{reg}, r[:]); err != nil {
		return 0, errors.Wrapf(err, "ds3231: read register 0x%02x", reg)
	}
	return r[0], nil
}

func (d *Dev) updateReg(reg, set, clear byte) error {
	v, err := d.readReg(reg)
	if err != nil {
		return err
	}
	v = v&^clear | set
	if err := d.d.Tx([]byte{reg, v}, nil); err != nil {
		return errors.Wrapf(err, "ds3231: write register 0x%02x", reg)
	}
	return nil
}

func bcd(v byte) int { return int(v>>4)*10 + int(v&0x0F) }

func toBCD(v int) byte { return byte(v/10)<<4 | byte(v%10) }

func decodeTime(r []byte, loc *time.Location) time.Time {
	sec := bcd(r[0] & 0x7F)
	min := bcd(r[1] & 0x7F)

	var hour int
	if r[2]&hour12 != 0 {
		hour = bcd(r[2]&0x1F) % 12
		if r[2]&hourPM != 0 {
			hour += 12
		}
	} else {
		hour = bcd(r[2] & 0x3F)
	}

	day := bcd(r[4] & 0x3F)
	month := bcd(r[5] & 0x1F)
	year := 2000 + bcd(r[6])
	if r[5]&century != 0 {
		year += 100
	}
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, loc)
}

func encodeTime(t time.Time) []byte {
	month := toBCD(int(t.Month()))
	year := t.Year() - 2000
	if year < 0 {
		year = 0
	}
	if year >= 100 {
		month |= century
		year -= 100
	}
	return []byte{
		toBCD(t.Second()),
		toBCD(t.Minute()),
		toBCD(t.Hour()),
		byte(t.Weekday()) + 1,
		toBCD(t.Day()),
		month,
		toBCD(year),
	}
}
