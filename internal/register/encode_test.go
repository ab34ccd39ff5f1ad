// internal/register/encode_test.go
package register

import (
	"testing"

	"github.com/tamzrod/inspection-station/internal/protocol"
)

func TestPackCommand_Layout(t *testing.T) {
	r := PackCommand(Command{Execute: true, Code: protocol.CmdTakePicture, Parameter: 5})

	want := uint32(1)<<31 | uint32(0x10)<<23 | 5
	if r != want {
		t.Fatalf("PackCommand = 0x%08x, want 0x%08x", r, want)
	}

	c := UnpackCommand(r)
	if !c.Execute || c.Code != protocol.CmdTakePicture || c.Parameter != 5 {
		t.Fatalf("UnpackCommand = %+v", c)
	}
}

func TestPackCommand_ParameterMasked(t *testing.T) {
	r := PackCommand(Command{Code: protocol.CmdPing, Parameter: MaxParameter + 1})

	c := UnpackCommand(r)
	if c.Parameter != 0 {
		t.Fatalf("parameter overflow leaked: got %d", c.Parameter)
	}
	if c.Code != protocol.CmdPing {
		t.Fatalf("parameter overflow corrupted code: got %s", c.Code)
	}
}

func TestPackStatus_Layout(t *testing.T) {
	s := Status{
		Operational: true,
		Busy:        false,
		Error:       protocol.ErrNoCamera,
		Status:      protocol.StatusError,
	}

	r := PackStatus(s)
	want := uint32(1)<<31 | uint32(0x05)<<22 | 0x04
	if r != want {
		t.Fatalf("PackStatus = 0x%08x, want 0x%08x", r, want)
	}

	if got := UnpackStatus(r); got != s {
		t.Fatalf("UnpackStatus = %+v, want %+v", got, s)
	}
}

func TestWords_HighWordFirst(t *testing.T) {
	words := ToWords(0x12345678)
	if words[0] != 0x1234 || words[1] != 0x5678 {
		t.Fatalf("ToWords = %04x %04x", words[0], words[1])
	}
	if FromWords(words) != 0x12345678 {
		t.Fatalf("FromWords mismatch")
	}
	if FromWords([]uint16{0xABCD}) != 0xABCD0000 {
		t.Fatalf("FromWords short input mismatch")
	}
}

func TestNameWords(t *testing.T) {
	regs := NameWords("CAM-01")
	if len(regs) != StationNameWords {
		t.Fatalf("expected %d regs, got %d", StationNameWords, len(regs))
	}
	if regs[0] != uint16('C')<<8|uint16('A') {
		t.Fatalf("reg0 = %04x", regs[0])
	}
	if regs[2] != uint16('0')<<8|uint16('1') {
		t.Fatalf("reg2 = %04x", regs[2])
	}
	if regs[3] != 0 {
		t.Fatalf("padding not zero: %04x", regs[3])
	}

	long := NameWords("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	if long[7] != uint16('O')<<8|uint16('P') {
		t.Fatalf("truncation wrong: %04x", long[7])
	}

	bad := NameWords("A\x01")
	if bad[0] != uint16('A')<<8|uint16('?') {
		t.Fatalf("sanitize wrong: %04x", bad[0])
	}
}
