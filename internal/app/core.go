// internal/app/core.go
package app

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/gateway"
	"github.com/tamzrod/inspection-station/internal/inspection"
	"github.com/tamzrod/inspection-station/internal/lifecycle"
	"github.com/tamzrod/inspection-station/internal/worker"
)

// Core is the controller side and the worker, wired over one pair of
// channels and one stop signal.
type Core struct {
	Channels  worker.Channels
	Stop      *worker.Signal
	Worker    *worker.Worker
	Gateway   *gateway.Gateway
	Lifecycle *lifecycle.Manager
}

// NewCore builds everything but does not start the worker.
// obs may be nil.
func NewCore(idleTick time.Duration, insp inspection.Inspector, obs gateway.Observer, log *zap.Logger) (*Core, error) {
	if insp == nil {
		return nil, errors.New("app: inspector required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	ch := worker.NewChannels()
	stop := worker.NewSignal()

	w, err := worker.New(worker.Config{IdleTick: idleTick}, ch, stop, insp, log.Named("worker"))
	if err != nil {
		return nil, err
	}

	gw, err := gateway.New(ch, obs, log.Named("gateway"))
	if err != nil {
		return nil, err
	}

	lc, err := lifecycle.New(w, ch, stop, log.Named("lifecycle"))
	if err != nil {
		return nil, err
	}

	return &Core{
		Channels:  ch,
		Stop:      stop,
		Worker:    w,
		Gateway:   gw,
		Lifecycle: lc,
	}, nil
}

// Restart restarts the worker and clears any response the gateway still
// owes from before, since the restarted worker never sends it.
func (c *Core) Restart() error {
	if err := c.Lifecycle.Restart(); err != nil {
		return err
	}
	c.Gateway.Reset()
	return nil
}
