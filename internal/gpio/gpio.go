// Package gpio provides GPIO access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

// Reader reads the radar/motion input.
type Reader interface {
	// Read returns the raw binary level of the radar pin (0 or 1).
	// The sensor idles high; dips encode detected motion.
	Read() (int, error)

	// Close releases GPIO resources.
	Close() error
}

// LED drives the presence indicator output.
type LED interface {
	// Set drives the LED high (true) or low (false).
	Set(on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Pin defaults (BCM numbering)
const (
	DefaultPinRadar = 23 // mmWave radar digital out
	DefaultPinLED   = 24 // presence indicator
)
