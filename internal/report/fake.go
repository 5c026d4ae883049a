package report

// FakeEmitter records emitted lines for test assertions.
type FakeEmitter struct {
	// Lines contains every emitted line, newline included.
	Lines []string

	// Readings contains the decoded form of every emit.
	Readings []Reading

	// EmitError, if set, will be returned by Emit.
	EmitError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeEmitter creates a FakeEmitter.
func NewFakeEmitter() *FakeEmitter {
	return &FakeEmitter{}
}

// Emit records the line.
func (f *FakeEmitter) Emit(present bool, ppm int) error {
	if f.EmitError != nil {
		return f.EmitError
	}
	f.Lines = append(f.Lines, string(Format(present, ppm)))
	f.Readings = append(f.Readings, Reading{Present: present, PPM: ppm})
	return nil
}

// Close marks the emitter as closed.
func (f *FakeEmitter) Close() error {
	f.Closed = true
	return nil
}
