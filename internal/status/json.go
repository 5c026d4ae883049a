package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Verdict       string       `json:"verdict"`
	Transitions   int          `json:"transitions"`
	CO2PPM        int          `json:"co2_ppm"`
	Ready         bool         `json:"ready"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Stats         StatsJSON    `json:"eval_stats"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// StatsJSON is the JSON representation of evaluation stats.
type StatsJSON struct {
	Evaluations int `json:"evaluations"`
	Human       int `json:"human"`
	NoHuman     int `json:"no_human"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	WindowSize int    `json:"window_size"`
	PeriodMs   int64  `json:"period_ms"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr"`
	SerialPort string `json:"serial_port,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	verdict := snap.Verdict
	if verdict == "" {
		verdict = "UNKNOWN"
	}

	return StatusInner{
		Verdict:       verdict,
		Transitions:   snap.Transitions,
		CO2PPM:        snap.CO2PPM,
		Ready:         snap.Evaluated(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Stats: StatsJSON{
			Evaluations: snap.Stats.Evaluations,
			Human:       snap.Stats.Human,
			NoHuman:     snap.Stats.NoHuman,
		},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			WindowSize: snap.Config.WindowSize,
			PeriodMs:   snap.Config.PeriodMs,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
			SerialPort: snap.Config.SerialPort,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network == nil {
		return
	}
	inner.Network = &NetworkJSON{
		Type:       snap.Network.Type,
		IP:         snap.Network.IP,
		Status:     snap.Network.Status,
		Gateway:    snap.Network.Gateway,
		WifiStatus: snap.Network.WifiStatus,
		SSID:       snap.Network.SSID,
	}
}

// FormatStatus returns the JSON status document.
func FormatStatus(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
