// internal/poller/types.go
package poller

import "time"

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	At time.Time

	// CommandRegister is the 32-bit command register, valid when Err is nil.
	CommandRegister uint32

	Err error // non-nil means the poll cycle failed
}
