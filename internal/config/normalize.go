// internal/config/normalize.go
package config

import (
	"strings"

	"github.com/tamzrod/inspection-station/internal/register"
)

// Defaults applied by Normalize.
const (
	DefaultPollIntervalMs = 100
	DefaultIdleTickMs     = 50
	DefaultTimeoutMs      = 1000
	DefaultMQTTPrefix     = "inspection"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	st := &cfg.Station
	if st.PollIntervalMs <= 0 {
		st.PollIntervalMs = DefaultPollIntervalMs
	}
	if st.IdleTickMs <= 0 {
		st.IdleTickMs = DefaultIdleTickMs
	}

	// Station name lives in fixed status registers.
	if len(st.Name) > register.StationNameMaxChars {
		st.Name = st.Name[:register.StationNameMaxChars]
	}

	plc := &cfg.PLC
	plc.Transport = strings.ToLower(plc.Transport)
	if plc.Transport == "" {
		plc.Transport = TransportTCP
	}
	if plc.TimeoutMs <= 0 {
		plc.TimeoutMs = DefaultTimeoutMs
	}
	if plc.Transport == TransportRTU {
		s := &plc.Serial
		if s.BaudRate == 0 {
			s.BaudRate = 19200
		}
		if s.DataBits == 0 {
			s.DataBits = 8
		}
		if s.Parity == "" {
			s.Parity = "E"
		}
		s.Parity = strings.ToUpper(s.Parity)
		if s.StopBits == 0 {
			s.StopBits = 1
		}
	}

	status := &cfg.Status
	status.Transport = strings.ToLower(status.Transport)
	if status.Transport == "" {
		status.Transport = SinkModbus
	}
	if status.TimeoutMs <= 0 {
		status.TimeoutMs = plc.TimeoutMs
	}

	lg := &cfg.Logging
	lg.Level = strings.ToLower(lg.Level)
	if lg.Level == "" {
		lg.Level = DefaultLogLevel
	}
	lg.Format = strings.ToLower(lg.Format)
	if lg.Format == "" {
		lg.Format = DefaultLogFormat
	}

	mq := &cfg.MQTT
	if mq.Enabled {
		if mq.Prefix == "" {
			mq.Prefix = DefaultMQTTPrefix
		}
		mq.Prefix = strings.TrimSuffix(mq.Prefix, "/")
		if mq.ClientID == "" {
			mq.ClientID = "inspection-station-" + st.Name
		}
	}
}
