// Package logic contains pure business logic for presence detection.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Presence heuristic bounds: a window whose transition count falls inside
// [MinTransitions, MaxTransitions] (inclusive) is attributed to
// breathing-induced micro-motion. Too few flips means an empty room or a
// sensor stuck in one state; too many means noise or rapid unrelated motion.
// Empirical tuning constants, preserved as configured.
const (
	MinTransitions = 3
	MaxTransitions = 10
)

// ADC input domain and CO2 ppm output range for MapCO2.
const (
	ADCMax = 4095
	PPMMin = 400
	PPMMax = 2000
)

// DefaultWindowSize is the number of samples held in the detection window.
const DefaultWindowSize = 100

// DefaultSampleInterval is the polling interval between samples.
const DefaultSampleInterval = 100 * time.Millisecond

// Verdict is the result of one evaluation of the detection window.
type Verdict struct {
	Timestamp   time.Time
	Present     bool
	Transitions int
}

// EvalStats counts evaluation outcomes since startup.
type EvalStats struct {
	Evaluations int
	Human       int
	NoHuman     int
}
