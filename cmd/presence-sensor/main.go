// Command presence-sensor samples a radar motion input, infers human
// presence with a transition-count heuristic, and reports verdicts over a
// serial link and MQTT while driving an indicator LED.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/presence-sensor/internal/adc"
	"github.com/sweeney/presence-sensor/internal/config"
	"github.com/sweeney/presence-sensor/internal/gpio"
	"github.com/sweeney/presence-sensor/internal/logic"
	"github.com/sweeney/presence-sensor/internal/mqtt"
	"github.com/sweeney/presence-sensor/internal/report"
	"github.com/sweeney/presence-sensor/internal/status"
	"github.com/sweeney/presence-sensor/internal/web"
)

func main() {
	defaults := config.Default()

	configPath := flag.String("config", "", "YAML config file (flags override file values)")
	poll := flag.Duration("poll", defaults.Sampling.PollInterval, "Radar polling interval")
	window := flag.Int("window", defaults.Sampling.WindowSize, "Detection window size in samples")
	broker := flag.String("broker", defaults.MQTT.Broker, `MQTT broker address ("off" disables)`)
	pinRadar := flag.Int("pin-radar", defaults.Pins.Radar, "BCM pin number for the radar input")
	pinLED := flag.Int("pin-led", defaults.Pins.LED, "BCM pin number for the indicator LED")
	adcChannel := flag.Int("adc-channel", defaults.Pins.ADCChannel, "ADS1115 channel for the CO2 sensor")
	serialPort := flag.String("serial", defaults.Serial.Port, "Serial port for report lines (empty writes to stdout)")
	baud := flag.Int("baud", defaults.Serial.BaudRate, "Serial baud rate")
	httpAddr := flag.String("http", defaults.HTTP.Addr, "HTTP status address (empty to disable)")
	printState := flag.Bool("print-state", false, "Print current sensor readings and exit")

	flag.Parse()

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("fatal: %v", err)
		}
		cfg = loaded

		// Explicitly set flags win over file values.
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "poll":
				cfg.Sampling.PollInterval = *poll
			case "window":
				cfg.Sampling.WindowSize = *window
			case "broker":
				cfg.MQTT.Broker = *broker
			case "pin-radar":
				cfg.Pins.Radar = *pinRadar
			case "pin-led":
				cfg.Pins.LED = *pinLED
			case "adc-channel":
				cfg.Pins.ADCChannel = *adcChannel
			case "serial":
				cfg.Serial.Port = *serialPort
			case "baud":
				cfg.Serial.BaudRate = *baud
			case "http":
				cfg.HTTP.Addr = *httpAddr
			}
		})
	} else {
		cfg.Sampling.PollInterval = *poll
		cfg.Sampling.WindowSize = *window
		cfg.MQTT.Broker = *broker
		cfg.Pins.Radar = *pinRadar
		cfg.Pins.LED = *pinLED
		cfg.Pins.ADCChannel = *adcChannel
		cfg.Serial.Port = *serialPort
		cfg.Serial.BaudRate = *baud
		cfg.HTTP.Addr = *httpAddr
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg *config.Config, printState bool) error {
	// Initialize GPIO and ADC
	radar, err := gpio.NewRealReader(cfg.Pins.Radar)
	if err != nil {
		return fmt.Errorf("init radar gpio: %w", err)
	}
	defer radar.Close()

	co2, err := adc.NewRealReader(cfg.Pins.ADCChannel)
	if err != nil {
		return fmt.Errorf("init co2 adc: %w", err)
	}
	defer co2.Close()

	// Print state mode
	if printState {
		sample, err := radar.Read()
		if err != nil {
			return fmt.Errorf("read radar: %w", err)
		}
		raw, err := co2.Read()
		if err != nil {
			return fmt.Errorf("read co2: %w", err)
		}
		fmt.Printf("RADAR: %d, CO2: %d ppm (raw %d)\n", sample, logic.MapCO2(raw), raw)
		return nil
	}

	led, err := gpio.NewRealLED(cfg.Pins.LED)
	if err != nil {
		return fmt.Errorf("init led gpio: %w", err)
	}
	defer led.Close()

	// Report link: serial port when configured, stdout otherwise
	var emitter report.Emitter
	if cfg.Serial.Port != "" {
		serialEmitter, err := report.NewSerialEmitter(cfg.Serial.Port, cfg.Serial.BaudRate)
		if err != nil {
			return fmt.Errorf("init serial: %w", err)
		}
		emitter = serialEmitter
	} else {
		emitter = report.NewWriterEmitter(os.Stdout)
	}
	defer emitter.Close()

	// MQTT is optional
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Broker != "off" {
		realPublisher, err := mqtt.NewRealPublisher(cfg.MQTT.Broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher = realPublisher
		mqttStatus = realPublisher
		defer publisher.Close()
	}

	period := cfg.EvaluationPeriod()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     cfg.Sampling.PollInterval.Milliseconds(),
		WindowSize: cfg.Sampling.WindowSize,
		PeriodMs:   period.Milliseconds(),
		Broker:     cfg.MQTT.Broker,
		HTTPAddr:   cfg.HTTP.Addr,
		SerialPort: cfg.Serial.Port,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: poll=%v window=%d period=%v broker=%s",
		cfg.Sampling.PollInterval, cfg.Sampling.WindowSize, period, cfg.MQTT.Broker)

	ticker := time.NewTicker(cfg.Sampling.PollInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(radar, led, co2, emitter, publisher, mqttStatus, tracker,
		cfg.Sampling.WindowSize, period, time.Now, ticker.C, sigCh)
}

func runLoop(radar gpio.Reader, led gpio.LED, co2 adc.Reader, emitter report.Emitter,
	publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker,
	windowSize int, period time.Duration, now func() time.Time,
	tick <-chan time.Time, sig <-chan os.Signal) error {

	startTime := now()
	detector, err := logic.NewDetector(windowSize, period, startTime)
	if err != nil {
		return fmt.Errorf("init detector: %w", err)
	}

	lastPPM := logic.PPMMin

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			if publisher != nil {
				event := mqtt.SystemEvent{
					Timestamp: now(),
					Event:     "SHUTDOWN",
					Reason:    signalName,
					Retained:  true,
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					snap := tracker.Snapshot()
					event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
				}
				if err := publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-tick:
			t := now()
			sample, err := radar.Read()
			if err != nil {
				log.Printf("radar read error: %v", err)
				continue
			}

			// The CO2 path is read every tick so a verdict always carries
			// the latest reading.
			if raw, err := co2.Read(); err != nil {
				log.Printf("co2 read error: %v", err)
			} else {
				lastPPM = logic.MapCO2(raw)
			}

			verdict := detector.Process(sample, t)
			if verdict == nil {
				continue
			}

			log.Printf("verdict: present=%v transitions=%d co2=%dppm",
				verdict.Present, verdict.Transitions, lastPPM)

			if err := led.Set(verdict.Present); err != nil {
				log.Printf("led error: %v", err)
			}

			if err := emitter.Emit(verdict.Present, lastPPM); err != nil {
				log.Printf("emit error: %v", err)
				// Don't crash on emit failure
			}

			if publisher != nil {
				if err := publisher.Publish(*verdict, lastPPM); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			if tracker != nil {
				tracker.Update(*verdict, lastPPM, detector.Stats())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				// Refresh network info once per evaluation, not per tick
				if net := readNetworkInfo(); net != nil {
					tracker.SetNetwork(net)
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
