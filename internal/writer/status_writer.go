// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"

	"github.com/tamzrod/inspection-station/internal/register"
)

// statusWriter is the concrete implementation used by the station.
type statusWriter struct {
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     uint32
	nameRegs []uint16
}

// NewStatusWriter builds a status writer over one endpoint client.
func NewStatusWriter(plan StatusPlan, cli endpointClient) (*statusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	return &statusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: register.NameWords(plan.StationName),
	}, nil
}

// WriteStatus delivers the status register.
// Unchanged values are not rewritten. On any write failure, the next call
// re-asserts the full block (status + station name).
func (sw *statusWriter) WriteStatus(reg uint32) error {
	if sw == nil || sw.cli == nil {
		return errors.New("status writer: disabled")
	}

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, sw.plan.Address, sw.fullBlockRegs(reg)); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = reg
		return nil
	}

	if reg == sw.last {
		return nil
	}

	if err := sw.cli.WriteRegisters(sw.plan.UnitID, sw.plan.Address, register.ToWords(reg)); err != nil {
		// A failed write introduces doubt: re-assert on next call.
		sw.needFull = true
		return fmt.Errorf("status writer: status write failed: %w", err)
	}

	sw.last = reg
	return nil
}

func (sw *statusWriter) fullBlockRegs(reg uint32) []uint16 {
	regs := make([]uint16, 0, register.StatusBlockWords)
	regs = append(regs, register.ToWords(reg)...)
	regs = append(regs, sw.nameRegs...)
	return regs
}
