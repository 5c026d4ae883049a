// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/presence-sensor/internal/logic"
)

// Topic is the MQTT topic for presence verdicts.
const Topic = "sensors/presence/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "sensors/presence/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a presence verdict to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(verdict logic.Verdict, ppm int) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Presence PresencePayload `json:"presence"`
}

// PresencePayload contains the verdict details.
type PresencePayload struct {
	Timestamp   string `json:"timestamp"`
	Verdict     string `json:"verdict"`
	Transitions int    `json:"transitions"`
	CO2PPM      int    `json:"co2_ppm"`
}

// FormatPayload creates the JSON payload for a presence verdict.
func FormatPayload(verdict logic.Verdict, ppm int) ([]byte, error) {
	v := "NO HUMAN"
	if verdict.Present {
		v = "HUMAN"
	}
	payload := Payload{
		Presence: PresencePayload{
			Timestamp:   verdict.Timestamp.UTC().Format(time.RFC3339),
			Verdict:     v,
			Transitions: verdict.Transitions,
			CO2PPM:      ppm,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
