// Package brightness follows ambient light with the LED supply PWM.
package brightness

import "log"

const (
	// RawMax is the largest light sensor reading.
	RawMax = 1023
	// DefaultEvery is the number of rendered frames between samples.
	DefaultEvery = 500
)

type Sensor interface {
	Read() (int, error)
}

type Output interface {
	SetDuty(duty uint8) error
}

type Logger interface {
	Printf(format string, v ...interface{})
}

type stdLogger struct{}

func (stdLogger) Printf(format string, v ...interface{}) { log.Printf(format, v...) }

// Map scales a reading to a duty cycle the same way the firmware always
// has: map(raw, 0, 1024, 0, 255).
func Map(raw int) uint8 {
	if raw < 0 {
		raw = 0
	}
	if raw > RawMax {
		raw = RawMax
	}
	return uint8(raw * 255 / (RawMax + 1))
}

type Sampler struct {
	sensor Sensor
	out    Output
	every  int
	duty   uint8
	logger Logger
}

func New(sensor Sensor, out Output, every int) *Sampler {
	if every <= 0 {
		every = DefaultEvery
	}
	return &Sampler{sensor: sensor, out: out, every: every, logger: stdLogger{}}
}

func (s *Sampler) SetLogger(l Logger) {
	if l == nil {
		l = stdLogger{}
	}
	s.logger = l
}

// Tick samples on every s.every'th iteration of the render loop and
// reports whether it did.
func (s *Sampler) Tick(iteration int) bool {
	if iteration%s.every != 0 {
		return false
	}
	if err := s.Sample(); err != nil {
		s.logger.Printf("brightness: %v", err)
	}
	return true
}

// Sample reads the sensor and applies the duty. On error the previous duty
// stays in place.
func (s *Sampler) Sample() error {
	raw, err := s.sensor.Read()
	if err != nil {
		return err
	}
	duty := Map(raw)
	if err := s.out.SetDuty(duty); err != nil {
		return err
	}
	s.duty = duty
	return nil
}

// Duty is the last duty applied.
func (s *Sampler) Duty() uint8 { return s.duty }
