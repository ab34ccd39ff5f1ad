// internal/worker/channels.go
package worker

import (
	"sync/atomic"

	"github.com/tamzrod/inspection-station/internal/protocol"
)

// channelCapacity is fixed at one: a single outstanding command system-wide.
const channelCapacity = 1

// Channels are the two one-way conduits between gateway and worker.
// The gateway is the only producer of Commands and the only consumer of
// Statuses; the worker is the reverse.
type Channels struct {
	Commands chan protocol.CommandRequest
	Statuses chan protocol.StatusResponse
}

// NewChannels builds a fresh capacity-1 channel pair.
func NewChannels() Channels {
	return Channels{
		Commands: make(chan protocol.CommandRequest, channelCapacity),
		Statuses: make(chan protocol.StatusResponse, channelCapacity),
	}
}

// Drain discards anything left in either channel and reports how much.
// Only call while the worker is not running.
func (c Channels) Drain() (commands, statuses int) {
	for {
		select {
		case <-c.Commands:
			commands++
		case <-c.Statuses:
			statuses++
		default:
			return commands, statuses
		}
	}
}

// Signal is the shared stop flag.
// Set and Clear may be called from any goroutine; the worker polls IsSet once
// per iteration and can also block on Wake.
type Signal struct {
	set  atomic.Bool
	wake chan struct{}
}

// NewSignal returns a cleared signal.
func NewSignal() *Signal {
	return &Signal{wake: make(chan struct{}, 1)}
}

// Set raises the flag and wakes a waiting worker.
func (s *Signal) Set() {
	s.set.Store(true)
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Clear lowers the flag and forgets any pending wake-up.
func (s *Signal) Clear() {
	s.set.Store(false)
	select {
	case <-s.wake:
	default:
	}
}

// IsSet reports whether a stop was requested.
func (s *Signal) IsSet() bool { return s.set.Load() }

// Wake fires after Set.
func (s *Signal) Wake() <-chan struct{} { return s.wake }
