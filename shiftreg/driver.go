// Package shiftreg multiplexes frames onto two LED blocks that share a
// chain of 74HC595 shift registers. Each block row is switched by a cathode
// line that sinks current when driven LOW.
package shiftreg

import (
	"github.com/pkg/errors"

	"dscheirer.com/tixclock/matrix"
)

// Line is a digital output. rpio.Pin satisfies it.
type Line interface {
	High()
	Low()
}

type BitOrder int

const (
	LSBFirst BitOrder = iota
	MSBFirst
)

// Pins wires the driver to the board. Cathodes[r] enables row r of the wide
// block and Cathodes[r+3] row r of the narrow block.
type Pins struct {
	Data     Line
	Clock    Line
	Latch    Line
	Cathodes [2 * matrix.FrameRows]Line
}

// ShiftOut clocks v out on data, one bit per clock pulse.
func ShiftOut(data, clock Line, order BitOrder, v byte) {
	for i := 0; i < 8; i++ {
		var bit byte
		if order == LSBFirst {
			bit = v & 0x01
			v >>= 1
		} else {
			bit = v & 0x80
			v <<= 1
		}
		if bit != 0 {
			data.High()
		} else {
			data.Low()
		}
		clock.High()
		clock.Low()
	}
}

type Driver struct {
	pins Pins
	hold func()
}

func NewDriver(pins Pins) (*Driver, error) {
	if pins.Data == nil || pins.Clock == nil || pins.Latch == nil {
		return nil, errors.New("shiftreg: data, clock and latch lines are required")
	}
	for _, c := range pins.Cathodes {
		if c == nil {
			return nil, errors.New("shiftreg: missing cathode line")
		}
	}
	return &Driver{pins: pins}, nil
}

// SetRowHold sets a func run while each row is lit, nil for none.
func (d *Driver) SetRowHold(hold func()) {
	d.hold = hold
}

// Blank disables every row and clears both registers.
func (d *Driver) Blank() {
	for _, c := range d.pins.Cathodes {
		c.High()
	}
	d.pins.Latch.Low()
	ShiftOut(d.pins.Data, d.pins.Clock, LSBFirst, 0)
	ShiftOut(d.pins.Data, d.pins.Clock, LSBFirst, 0)
	d.pins.Latch.High()
}

// RenderFrame sweeps the three rows once. A row is lit from the first
// latch until the blanking latch; the zero bytes keep the row's value from
// showing on the next row while the cathodes switch. Both blocks end dark.
func (d *Driver) RenderFrame(f matrix.Frame) {
	p := d.pins
	for j := 0; j < matrix.FrameRows; j++ {
		p.Latch.Low()
		p.Cathodes[j].Low()
		p.Cathodes[j+matrix.FrameRows].Low()

		// the narrow block sits at the far end of the chain
		ShiftOut(p.Data, p.Clock, LSBFirst, f.Narrow[j])
		ShiftOut(p.Data, p.Clock, LSBFirst, f.Wide[j])

		p.Latch.High()
		if d.hold != nil {
			d.hold()
		}
		p.Latch.Low()

		// one zero byte per register, or the narrow block would latch
		// the wide row pushed along the chain
		ShiftOut(p.Data, p.Clock, LSBFirst, 0)
		ShiftOut(p.Data, p.Clock, LSBFirst, 0)

		p.Latch.High()
		p.Cathodes[j].High()
		p.Cathodes[j+matrix.FrameRows].High()
	}
}
