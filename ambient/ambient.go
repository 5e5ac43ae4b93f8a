// Package ambient reads the light dependent resistor divider through an
// ADS1115 and reports it on the 0..1023 scale the brightness map expects.
package ambient

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// RawMax is the top of the reported range.
const RawMax = 1023

type reader interface {
	Read() (analog.Sample, error)
}

type Sensor struct {
	pin reader
	ref physic.ElectricPotential
}

// Open configures channel 0 of an ADS1115 at its default address. ref is
// the divider supply; a reading of ref maps to RawMax.
func Open(bus i2c.Bus, ref physic.ElectricPotential) (*Sensor, error) {
	if ref <= 0 {
		return nil, errors.Errorf("ambient: bad reference voltage %s", ref)
	}
	adc, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		return nil, errors.Wrap(err, "ambient: open ADS1115")
	}
	pin, err := adc.PinForChannel(ads1x15.Channel0, ref, 8*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		return nil, errors.Wrap(err, "ambient: configure channel 0")
	}
	return &Sensor{pin: pin, ref: ref}, nil
}

func (s *Sensor) Read() (int, error) {
	sample, err := s.pin.Read()
	if err != nil {
		return 0, errors.Wrap(err, "ambient: read")
	}
	return scale(sample.V, s.ref), nil
}

func (s *Sensor) Close() error {
	if h, ok := s.pin.(interface{ Halt() error }); ok {
		return h.Halt()
	}
	return nil
}

func scale(v, ref physic.ElectricPotential) int {
	raw := int(int64(v) * RawMax / int64(ref))
	if raw < 0 {
		return 0
	}
	if raw > RawMax {
		return RawMax
	}
	return raw
}

// Fixed is a sensor stuck at one reading, for running without the ADC.
type Fixed int

func (f Fixed) Read() (int, error) { return int(f), nil }
