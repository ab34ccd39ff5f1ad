// internal/writer/modbus/client_test.go
package modbus

import "testing"

func TestEncodeWords_BigEndian(t *testing.T) {
	got := encodeWords([]uint16{0xC000, 0x0105})
	want := []byte{0xC0, 0x00, 0x01, 0x05}

	if len(got) != len(want) {
		t.Fatalf("len: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got=%#x want=%#x", i, got[i], want[i])
		}
	}
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestWriteRegisters_QuantityLimit(t *testing.T) {
	c := &EndpointClient{endpoint: "unused"}

	if err := c.WriteRegisters(1, 0, nil); err != nil {
		t.Fatalf("empty write should be a no-op, got %v", err)
	}
	if err := c.WriteRegisters(1, 0, make([]uint16, maxWriteQuantity+1)); err == nil {
		t.Fatalf("expected quantity error, got nil")
	}
}
