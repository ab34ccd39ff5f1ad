// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tamzrod/inspection-station/internal/register"
)

// Client abstracts the Modbus read the poller needs.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
}

// Factory opens a new client. One attempt per call.
type Factory func() (Client, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Address  uint16 // first word of the command register
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader of the command register.
//
// The connection is reused while healthy. On a read failure the client is
// discarded and factory is used on a later cycle.
type Poller struct {
	cfg     Config
	client  Client
	factory Factory
}

// New creates a poller with immutable config.
// client may be nil when factory is set; the first cycle connects.
func New(cfg Config, client Client, factory Factory) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if client == nil && factory == nil {
		return nil, errors.New("poller: client or factory required")
	}
	return &Poller{cfg: cfg, client: client, factory: factory}, nil
}

// PollOnce performs exactly one poll cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: time.Now()}

	if p.client == nil {
		c, err := p.factory()
		if err != nil {
			res.Err = fmt.Errorf("poller: connect: %w", err)
			return res
		}
		p.client = c
	}

	words, err := p.client.ReadHoldingRegisters(p.cfg.Address, register.WordsPerRegister)
	if err != nil {
		p.discard()
		res.Err = fmt.Errorf("poller: read command register @%d: %w", p.cfg.Address, err)
		return res
	}
	if len(words) != register.WordsPerRegister {
		p.discard()
		res.Err = fmt.Errorf("poller: short read: got %d words", len(words))
		return res
	}

	res.CommandRegister = register.FromWords(words)
	return res
}

// Close releases the current client, if any.
func (p *Poller) Close() error {
	if c, ok := p.client.(io.Closer); ok {
		p.client = nil
		return c.Close()
	}
	return nil
}

// discard drops a dead client so the factory can replace it.
// Without a factory the client is kept and retried as is.
func (p *Poller) discard() {
	if p.factory == nil {
		return
	}
	_ = p.Close()
	p.client = nil
}
