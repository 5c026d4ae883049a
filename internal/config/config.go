// Package config loads daemon configuration from an optional YAML file.
// Flags parsed in main take precedence over file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/presence-sensor/internal/adc"
	"github.com/sweeney/presence-sensor/internal/gpio"
	"github.com/sweeney/presence-sensor/internal/logic"
	"github.com/sweeney/presence-sensor/internal/report"
)

// Config represents the daemon configuration.
type Config struct {
	Sampling SamplingConfig `yaml:"sampling"`
	Pins     PinsConfig     `yaml:"pins"`
	Serial   SerialConfig   `yaml:"serial"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// SamplingConfig contains polling and window parameters.
type SamplingConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	WindowSize   int           `yaml:"window_size"`
}

// PinsConfig contains GPIO and ADC wiring.
type PinsConfig struct {
	Radar      int `yaml:"radar"`
	LED        int `yaml:"led"`
	ADCChannel int `yaml:"adc_channel"`
}

// SerialConfig contains the report link configuration.
// An empty port means reports go to stdout.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// MQTTConfig contains broker settings. Broker "off" disables publishing.
type MQTTConfig struct {
	Broker string `yaml:"broker"`
}

// HTTPConfig contains the status server settings. An empty address
// disables the server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a configuration with the stock tuning values.
func Default() *Config {
	return &Config{
		Sampling: SamplingConfig{
			PollInterval: logic.DefaultSampleInterval,
			WindowSize:   logic.DefaultWindowSize,
		},
		Pins: PinsConfig{
			Radar:      gpio.DefaultPinRadar,
			LED:        gpio.DefaultPinLED,
			ADCChannel: adc.DefaultChannel,
		},
		Serial: SerialConfig{
			BaudRate: report.DefaultBaudRate,
		},
		MQTT: MQTTConfig{
			Broker: "tcp://192.168.1.200:1883",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the daemon misbehave at runtime.
func (c *Config) Validate() error {
	if c.Sampling.WindowSize <= 0 {
		return fmt.Errorf("sampling.window_size must be positive, got %d", c.Sampling.WindowSize)
	}
	if c.Sampling.PollInterval <= 0 {
		return fmt.Errorf("sampling.poll_interval must be positive, got %v", c.Sampling.PollInterval)
	}
	if c.Serial.BaudRate < 0 {
		return fmt.Errorf("serial.baud_rate must not be negative, got %d", c.Serial.BaudRate)
	}
	return nil
}

// EvaluationPeriod derives the presence evaluation period: one full window
// worth of samples.
func (c *Config) EvaluationPeriod() time.Duration {
	return time.Duration(c.Sampling.WindowSize) * c.Sampling.PollInterval
}
