package logic

import "fmt"

// Window is a fixed-capacity circular buffer of binary sensor readings.
// Each insert overwrites the oldest entry. Not safe for concurrent use —
// it has a single owner, the detection loop.
type Window struct {
	samples []int
	next    int // next slot to overwrite
}

// NewWindow creates a Window with the given capacity. All slots start at 1,
// the radar's idle/high reading, so a quiet startup does not register as
// motion. Capacity must be positive.
func NewWindow(capacity int) (*Window, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("window capacity must be positive, got %d", capacity)
	}
	samples := make([]int, capacity)
	for i := range samples {
		samples[i] = 1
	}
	return &Window{samples: samples}, nil
}

// Insert overwrites the slot at the write cursor with v and advances the
// cursor modulo capacity. v is a binary reading (0 or 1).
func (w *Window) Insert(v int) {
	w.samples[w.next] = v
	w.next = (w.next + 1) % len(w.samples)
}

// Capacity returns the fixed number of slots.
func (w *Window) Capacity() int {
	return len(w.samples)
}

// Snapshot returns a copy of the current samples in physical storage order,
// starting from index 0. The order is not chronological; transition counting
// scans the full stored array regardless of logical recency.
func (w *Window) Snapshot() []int {
	out := make([]int, len(w.samples))
	copy(out, w.samples)
	return out
}
