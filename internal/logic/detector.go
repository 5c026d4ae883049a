package logic

import "time"

// Detector owns the sample window and the periodic evaluation gate.
type Detector struct {
	window   *Window
	period   time.Duration
	lastEval time.Time
	stats    EvalStats
}

// NewDetector creates a Detector over a window of the given capacity that
// evaluates once per period. The startTime seeds the evaluation gate, so the
// first verdict arrives one full period after startup, once the window has
// had time to fill with real readings.
func NewDetector(capacity int, period time.Duration, startTime time.Time) (*Detector, error) {
	w, err := NewWindow(capacity)
	if err != nil {
		return nil, err
	}
	return &Detector{
		window:   w,
		period:   period,
		lastEval: startTime,
	}, nil
}

// Process inserts one radar sample and, if an evaluation is due, scans the
// window and returns a Verdict. Returns nil when no evaluation is due.
// Insertion always happens before the due-check, so the newest sample is
// reflected in any verdict returned from the same call.
func (d *Detector) Process(sample int, now time.Time) *Verdict {
	d.window.Insert(sample)

	if !evaluationDue(now, d.lastEval, d.period) {
		return nil
	}
	d.lastEval = now

	transitions := CountTransitions(d.window.Snapshot())
	present := IsPresent(transitions)

	d.stats.Evaluations++
	if present {
		d.stats.Human++
	} else {
		d.stats.NoHuman++
	}

	return &Verdict{
		Timestamp:   now,
		Present:     present,
		Transitions: transitions,
	}
}

// evaluationDue reports whether a full period has elapsed since the last
// evaluation. Strictly greater-than: an elapsed time exactly equal to the
// period is not yet due.
func evaluationDue(now, lastEval time.Time, period time.Duration) bool {
	return now.Sub(lastEval) > period
}

// CountTransitions returns the number of adjacent-pair differences in the
// sample sequence: positions 1..n-1 each compared to their predecessor.
// Pure function, no side effects.
func CountTransitions(samples []int) int {
	transitions := 0
	for i := 1; i < len(samples); i++ {
		if samples[i] != samples[i-1] {
			transitions++
		}
	}
	return transitions
}

// IsPresent reports whether a transition count indicates human presence,
// i.e. falls within [MinTransitions, MaxTransitions] inclusive.
func IsPresent(transitions int) bool {
	return transitions >= MinTransitions && transitions <= MaxTransitions
}

// MapCO2 converts a raw ADC reading in [0, ADCMax] to an estimated CO2 ppm
// in [PPMMin, PPMMax] by linear interpolation with integer division. Inputs
// outside the domain extrapolate linearly; no clamping is applied.
func MapCO2(raw int) int {
	return PPMMin + raw*(PPMMax-PPMMin)/ADCMax
}

// Stats returns evaluation counts since startup.
func (d *Detector) Stats() EvalStats {
	return d.stats
}

// Period returns the evaluation period.
func (d *Detector) Period() time.Duration {
	return d.period
}

// WindowSnapshot exposes the current window contents for diagnostics.
func (d *Detector) WindowSnapshot() []int {
	return d.window.Snapshot()
}
