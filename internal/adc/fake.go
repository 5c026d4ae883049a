package adc

import "errors"

// FakeReader is a test double that returns scripted ADC readings.
type FakeReader struct {
	// Readings contains scripted raw values to return.
	// Each call to Read() consumes the next reading.
	Readings []int

	// index tracks current position in Readings
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeReader creates a FakeReader with the given readings.
func NewFakeReader(readings []int) *FakeReader {
	return &FakeReader{Readings: readings}
}

// Read returns the next scripted reading.
// If readings are exhausted, returns the last reading repeatedly.
func (f *FakeReader) Read() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Readings) == 0 {
		return 0, errors.New("no readings configured")
	}

	v := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}

	return v, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}
