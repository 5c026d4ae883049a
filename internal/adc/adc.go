// Package adc provides analog input reading with hardware abstraction.
// The real implementation uses an ADS1115 over I²C via periph.io.
// The fake implementation allows testing without hardware.
package adc

// Reader reads the CO2 sensor's analog output.
type Reader interface {
	// Read returns the raw reading scaled to the 12-bit domain [0, 4095].
	Read() (int, error)

	// Close releases ADC resources.
	Close() error
}

// DefaultChannel is the ADS1115 input channel wired to the CO2 sensor.
const DefaultChannel = 0
