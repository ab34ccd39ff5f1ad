// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/inspection-station/internal/register"
)

// Transport and sink names.
const (
	TransportTCP = "tcp"
	TransportRTU = "rtu"

	SinkModbus = "modbus"
	SinkIngest = "ingest"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	var errs []error

	// ------------------------------------------------------------
	// STATION
	// ------------------------------------------------------------

	if cfg.Station.Name == "" {
		errs = append(errs, errors.New("station.name is required"))
	}
	for i := 0; i < len(cfg.Station.Name); i++ {
		if cfg.Station.Name[i] > 0x7F {
			errs = append(errs, errors.New("station.name must contain ASCII characters only"))
			break
		}
	}
	if cfg.Station.PollIntervalMs < 0 {
		errs = append(errs, errors.New("station.poll_interval_ms must be >= 0"))
	}
	if cfg.Station.IdleTickMs < 0 {
		errs = append(errs, errors.New("station.idle_tick_ms must be >= 0"))
	}

	// ------------------------------------------------------------
	// PLC
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.PLC.Transport) {
	case "", TransportTCP, TransportRTU:
	default:
		errs = append(errs, fmt.Errorf("plc.transport %q: want tcp or rtu", cfg.PLC.Transport))
	}
	if cfg.PLC.Endpoint == "" {
		errs = append(errs, errors.New("plc.endpoint is required"))
	}
	if strings.ToLower(cfg.PLC.Transport) == TransportRTU {
		switch strings.ToUpper(cfg.PLC.Serial.Parity) {
		case "", "N", "E", "O":
		default:
			errs = append(errs, fmt.Errorf("plc.serial.parity %q: want N, E or O", cfg.PLC.Serial.Parity))
		}
	}

	// ------------------------------------------------------------
	// STATUS SINK
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Status.Transport) {
	case "", SinkModbus, SinkIngest:
	default:
		errs = append(errs, fmt.Errorf("status.transport %q: want modbus or ingest", cfg.Status.Transport))
	}

	// Status block is written to the PLC endpoint when no sink endpoint is given,
	// so it must not cover the command register there.
	sameDevice := cfg.Status.Endpoint == "" || cfg.Status.Endpoint == cfg.PLC.Endpoint
	if sameDevice && strings.ToLower(cfg.Status.Transport) != SinkIngest {
		if cfg.Status.UnitID == 0 || cfg.Status.UnitID == cfg.PLC.UnitID {
			if overlaps(cfg.PLC.CommandAddress, register.WordsPerRegister, cfg.Status.Address, register.StatusBlockWords) {
				errs = append(errs, fmt.Errorf(
					"status block %d-%d overlaps command register %d-%d",
					cfg.Status.Address, int(cfg.Status.Address)+register.StatusBlockWords-1,
					cfg.PLC.CommandAddress, int(cfg.PLC.CommandAddress)+register.WordsPerRegister-1,
				))
			}
		}
	}
	if strings.ToLower(cfg.PLC.Transport) == TransportRTU && cfg.Status.Endpoint == "" {
		errs = append(errs, errors.New("status.endpoint is required when plc.transport is rtu"))
	}
	if strings.ToLower(cfg.Status.Transport) == SinkIngest && cfg.Status.Endpoint == "" {
		errs = append(errs, errors.New("status.endpoint is required for the ingest transport"))
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not a level", cfg.Logging.Level))
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want json or console", cfg.Logging.Format))
	}

	// ------------------------------------------------------------
	// MQTT (opt-in)
	// ------------------------------------------------------------

	if cfg.MQTT.Enabled {
		if cfg.MQTT.Broker == "" {
			errs = append(errs, errors.New("mqtt.broker is required when mqtt is enabled"))
		}
		if cfg.MQTT.QoS > 2 {
			errs = append(errs, fmt.Errorf("mqtt.qos %d: want 0, 1 or 2", cfg.MQTT.QoS))
		}
		if strings.ContainsAny(cfg.MQTT.Prefix, "+#") {
			errs = append(errs, errors.New("mqtt.prefix must not contain wildcards"))
		}
		// station.name is a single topic level.
		if strings.ContainsAny(cfg.Station.Name, "+#/") {
			errs = append(errs, fmt.Errorf("station.name %q: must not contain '+', '#' or '/' when mqtt is enabled", cfg.Station.Name))
		}
	}

	return errors.Join(errs...)
}

// overlaps reports whether [a, a+an) and [b, b+bn) intersect.
func overlaps(a uint16, an int, b uint16, bn int) bool {
	aEnd := int(a) + an - 1
	bEnd := int(b) + bn - 1
	return !(aEnd < int(b) || int(a) > bEnd)
}
