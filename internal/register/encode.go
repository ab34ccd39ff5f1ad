// internal/register/encode.go
package register

import (
	"github.com/tamzrod/inspection-station/internal/protocol"
)

// Command is a decoded command register.
type Command struct {
	Execute   bool
	Code      protocol.CommandCode
	Parameter int
}

// Status is a decoded status register.
type Status struct {
	Operational bool
	Busy        bool
	Error       protocol.ErrorCode
	Status      protocol.StatusCode
}

// PackCommand builds a command register. Out-of-range fields are masked.
func PackCommand(c Command) uint32 {
	var r uint32
	if c.Execute {
		r |= 1 << cmdExecuteShift
	}
	r |= (uint32(c.Code) & cmdCodeMask) << cmdCodeShift
	r |= uint32(c.Parameter) & cmdParamMask
	return r
}

// UnpackCommand decodes a command register.
func UnpackCommand(r uint32) Command {
	return Command{
		Execute:   (r>>cmdExecuteShift)&1 == 1,
		Code:      protocol.CommandCode((r >> cmdCodeShift) & cmdCodeMask),
		Parameter: int(r & cmdParamMask),
	}
}

// PackStatus builds a status register. Out-of-range fields are masked.
func PackStatus(s Status) uint32 {
	var r uint32
	if s.Operational {
		r |= 1 << stOperationalShift
	}
	if s.Busy {
		r |= 1 << stBusyShift
	}
	r |= (uint32(s.Error) & stErrorMask) << stErrorShift
	r |= uint32(s.Status) & stAdditionalMask
	return r
}

// UnpackStatus decodes a status register.
func UnpackStatus(r uint32) Status {
	return Status{
		Operational: (r>>stOperationalShift)&1 == 1,
		Busy:        (r>>stBusyShift)&1 == 1,
		Error:       protocol.ErrorCode((r >> stErrorShift) & stErrorMask),
		Status:      protocol.StatusCode(r & stAdditionalMask),
	}
}

// FromWords joins two holding registers, high word first.
// Missing words read as zero.
func FromWords(words []uint16) uint32 {
	var hi, lo uint16
	if len(words) > 0 {
		hi = words[0]
	}
	if len(words) > 1 {
		lo = words[1]
	}
	return uint32(hi)<<16 | uint32(lo)
}

// ToWords splits a 32-bit register into two holding registers, high word first.
func ToWords(r uint32) []uint16 {
	return []uint16{uint16(r >> 16), uint16(r)}
}

// NameWords packs up to StationNameMaxChars ASCII characters into
// StationNameWords registers, two bytes per register, big-endian.
// Non-printable bytes become '?'.
func NameWords(name string) []uint16 {
	out := make([]uint16, StationNameWords)

	b := []byte(name)
	if len(b) > StationNameMaxChars {
		b = b[:StationNameMaxChars]
	}

	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < StationNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
