package report

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// DefaultBaudRate matches the original firmware's serial configuration.
const DefaultBaudRate = 115200

// Emitter writes report lines to the output link.
type Emitter interface {
	// Emit writes one verdict line.
	Emit(present bool, ppm int) error

	// Close releases the link.
	Close() error
}

// SerialEmitter writes report lines to a serial port.
type SerialEmitter struct {
	port serial.Port
}

// NewSerialEmitter opens the named serial port for report emission.
func NewSerialEmitter(portName string, baudRate int) (*SerialEmitter, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	return &SerialEmitter{port: port}, nil
}

// Emit writes one verdict line to the port.
func (e *SerialEmitter) Emit(present bool, ppm int) error {
	if _, err := e.port.Write(Format(present, ppm)); err != nil {
		return fmt.Errorf("write serial: %w", err)
	}
	return nil
}

// Close closes the port.
func (e *SerialEmitter) Close() error {
	return e.port.Close()
}

// WriterEmitter writes report lines to any io.Writer (typically stdout when
// no serial port is configured).
type WriterEmitter struct {
	w io.Writer
}

// NewWriterEmitter creates an emitter over w.
func NewWriterEmitter(w io.Writer) *WriterEmitter {
	return &WriterEmitter{w: w}
}

// Emit writes one verdict line to the writer.
func (e *WriterEmitter) Emit(present bool, ppm int) error {
	_, err := e.w.Write(Format(present, ppm))
	return err
}

// Close is a no-op; the writer is not owned by the emitter.
func (e *WriterEmitter) Close() error {
	return nil
}
