// Package status provides a thread-safe status tracker for the
// presence-sensor daemon. It is read by HTTP handlers and included in
// system MQTT events.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/presence-sensor/internal/logic"
)

// NetworkInfo contains network state as reported by the host helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	WindowSize int
	PeriodMs   int64
	Broker     string
	HTTPAddr   string
	SerialPort string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	// Verdict is "HUMAN" or "NO HUMAN" once the first evaluation has run,
	// empty before that.
	Verdict       string
	Transitions   int
	CO2PPM        int
	Stats         logic.EvalStats
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Evaluated reports whether any evaluation has produced a verdict yet.
func (s Snapshot) Evaluated() bool {
	return s.Verdict != ""
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update records the latest verdict, ppm and evaluation stats.
// Called from the run loop after every evaluation.
func (t *Tracker) Update(verdict logic.Verdict, ppm int, stats logic.EvalStats) {
	v := "NO HUMAN"
	if verdict.Present {
		v = "HUMAN"
	}
	t.mu.Lock()
	t.snap.Verdict = v
	t.snap.Transitions = verdict.Transitions
	t.snap.CO2PPM = ppm
	t.snap.Stats = stats
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
