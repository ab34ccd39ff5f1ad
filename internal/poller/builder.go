// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/tamzrod/inspection-station/internal/config"
	pmodbus "github.com/tamzrod/inspection-station/internal/poller/modbus"
)

// Build constructs a Poller for the PLC command register and wires the
// Modbus client lifecycle.
// Connection is reused while healthy.
// On transport death, Poller discards the client and uses factory on a future tick.
func Build(c cfg.Config) (*Poller, func() error, error) {
	plc := c.PLC

	// client factory: ONE attempt per call
	factory := func() (Client, error) {
		return pmodbus.New(pmodbus.Config{
			Transport: plc.Transport,
			Endpoint:  plc.Endpoint,
			UnitID:    plc.UnitID,
			Timeout:   time.Duration(plc.TimeoutMs) * time.Millisecond,
			BaudRate:  plc.Serial.BaudRate,
			DataBits:  plc.Serial.DataBits,
			Parity:    plc.Serial.Parity,
			StopBits:  plc.Serial.StopBits,
		})
	}

	// initial client (fail fast at startup)
	client, err := factory()
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			Address:  plc.CommandAddress,
			Interval: time.Duration(c.Station.PollIntervalMs) * time.Millisecond,
		},
		client,
		factory,
	)
	if err != nil {
		return nil, nil, err
	}

	return p, p.Close, nil
}
