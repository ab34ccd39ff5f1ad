// internal/writer/builder.go
package writer

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/inspection-station/internal/config"
	"github.com/tamzrod/inspection-station/internal/writer/ingest"
	wmodbus "github.com/tamzrod/inspection-station/internal/writer/modbus"
)

// BuildPlan converts config into a status plan.
// Assumes config has already passed validation and normalization.
// Endpoint and unit default to the PLC's.
func BuildPlan(c cfg.Config) StatusPlan {
	plan := StatusPlan{
		Endpoint:    c.Status.Endpoint,
		UnitID:      c.Status.UnitID,
		Address:     c.Status.Address,
		StationName: c.Station.Name,
	}
	if plan.Endpoint == "" {
		plan.Endpoint = c.PLC.Endpoint
	}
	if plan.UnitID == 0 {
		plan.UnitID = c.PLC.UnitID
	}
	return plan
}

// BuildStatusWriter creates the endpoint client for the configured sink
// and a status writer over it.
func BuildStatusWriter(c cfg.Config) (StatusWriter, func() error, error) {
	plan := BuildPlan(c)
	timeout := time.Duration(c.Status.TimeoutMs) * time.Millisecond

	var (
		cli     endpointClient
		closeFn func() error
	)

	switch c.Status.Transport {
	case cfg.SinkIngest:
		ic, err := ingest.NewEndpointClient(ingest.Config{
			Endpoint: plan.Endpoint,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		cli, closeFn = ic, ic.Close

	case cfg.SinkModbus, "":
		mc, err := wmodbus.NewEndpointClient(wmodbus.Config{
			Endpoint: plan.Endpoint,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		cli, closeFn = mc, mc.Close

	default:
		return nil, nil, fmt.Errorf("writer: unknown status transport %q", c.Status.Transport)
	}

	sw, err := NewStatusWriter(plan, cli)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return sw, closeFn, nil
}
