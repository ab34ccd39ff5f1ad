// internal/writer/types.go
package writer

// StatusPlan is where and how the status block is written.
type StatusPlan struct {
	Endpoint    string
	UnitID      uint8
	Address     uint16 // first word of the status register
	StationName string // written after the status register on full assert
}

// StatusWriter is the delivery-only contract for the status register.
// It receives a packed register and writes it verbatim.
type StatusWriter interface {
	WriteStatus(reg uint32) error
}

// endpointClient is the exact contract the writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
