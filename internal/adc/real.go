//go:build linux

package adc

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// vref is the sensor's full-scale output voltage. Readings are scaled from
// volts to the 12-bit domain against this reference.
const vref = 3300 * physic.MilliVolt

// RealReader reads the CO2 sensor through an ADS1115 on the I²C bus.
type RealReader struct {
	bus i2c.BusCloser
	pin ads1x15.PinADC
}

// NewRealReader opens the default I²C bus and configures the given ADS1115
// channel for single-shot reads up to vref.
func NewRealReader(channel int) (*RealReader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	dev, err := ads1x15.NewADS1115(bus, &ads1x15.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ads1115: %w", err)
	}

	ch, err := adsChannel(channel)
	if err != nil {
		bus.Close()
		return nil, err
	}

	pin, err := dev.PinForChannel(ch, vref, 1*physic.Hertz, ads1x15.SaveEnergy)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("configure channel %d: %w", channel, err)
	}

	return &RealReader{bus: bus, pin: pin}, nil
}

// Read samples the channel and scales the measured voltage to [0, 4095].
func (r *RealReader) Read() (int, error) {
	sample, err := r.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read adc: %w", err)
	}

	raw := int(int64(sample.V) * 4095 / int64(vref))
	if raw < 0 {
		raw = 0
	}
	if raw > 4095 {
		raw = 4095
	}
	return raw, nil
}

// Close halts the pin and closes the I²C bus.
func (r *RealReader) Close() error {
	var errs []error

	if r.pin != nil {
		if err := r.pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halt adc pin: %w", err))
		}
	}
	if r.bus != nil {
		if err := r.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func adsChannel(channel int) (ads1x15.Channel, error) {
	switch channel {
	case 0:
		return ads1x15.Channel0, nil
	case 1:
		return ads1x15.Channel1, nil
	case 2:
		return ads1x15.Channel2, nil
	case 3:
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("ads1115 channel out of range: %d", channel)
}
