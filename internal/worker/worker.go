// internal/worker/worker.go
package worker

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/inspection"
	"github.com/tamzrod/inspection-station/internal/protocol"
)

// DefaultIdleTick bounds how long an idle worker goes without re-checking
// the stop flag.
const DefaultIdleTick = 50 * time.Millisecond

// Config is the runtime config the worker needs.
type Config struct {
	IdleTick time.Duration
}

// Stats are cumulative counters since the Worker was built.
type Stats struct {
	Processed uint64
	Dropped   uint64
}

// Worker owns the device state and answers one command per iteration.
// It talks to the outside only through Channels and the stop Signal.
type Worker struct {
	cfg  Config
	ch   Channels
	stop *Signal
	insp inspection.Inspector
	log  *zap.Logger

	processed atomic.Uint64
	dropped   atomic.Uint64
}

// device is the worker-private state. It never leaves the worker goroutine.
type device struct {
	workpieceType int
}

// New creates a worker. Nothing runs until Run is called.
func New(cfg Config, ch Channels, stop *Signal, insp inspection.Inspector, log *zap.Logger) (*Worker, error) {
	if ch.Commands == nil || ch.Statuses == nil {
		return nil, errors.New("worker: channels required")
	}
	if stop == nil {
		return nil, errors.New("worker: stop signal required")
	}
	if insp == nil {
		return nil, errors.New("worker: inspector required")
	}
	if cfg.IdleTick <= 0 {
		cfg.IdleTick = DefaultIdleTick
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Worker{
		cfg:  cfg,
		ch:   ch,
		stop: stop,
		insp: insp,
		log:  log,
	}, nil
}

// Run is the processing loop. It returns once the stop signal is observed.
// Device state starts at "none" on every call, so a restart is a reboot.
func (w *Worker) Run() {
	dev := device{workpieceType: protocol.WorkpieceNone}

	// Reused across iterations; published by value.
	var resp protocol.StatusResponse

	tick := time.NewTicker(w.cfg.IdleTick)
	defer tick.Stop()

	w.log.Debug("worker loop started")

	for !w.stop.IsSet() {
		select {
		case req := <-w.ch.Commands:
			w.process(&dev, &resp, req)
			w.publish(resp)
		case <-w.stop.Wake():
		case <-tick.C:
		}
	}

	w.log.Debug("worker loop finished")
}

// Stats returns a snapshot of the counters. Safe from any goroutine.
func (w *Worker) Stats() Stats {
	return Stats{
		Processed: w.processed.Load(),
		Dropped:   w.dropped.Load(),
	}
}

func (w *Worker) process(dev *device, resp *protocol.StatusResponse, req protocol.CommandRequest) {
	w.processed.Add(1)

	switch req.Code {
	case protocol.CmdSetWorkpieceType122:
		w.log.Debug("updating workpiece type", zap.Int("workpiece_type", protocol.Workpiece122))
		dev.workpieceType = protocol.Workpiece122
		resp.Error = protocol.ErrUndefined
		resp.Status = protocol.StatusCommandAck

	case protocol.CmdTakePicture:
		outcome, err := w.inspect(dev.workpieceType)
		switch {
		case err != nil:
			w.log.Error("inspection failed", zap.Error(err))
			resp.Error = protocol.ErrInternal
			resp.Status = protocol.StatusError
		case outcome == inspection.Unavailable:
			resp.Error = protocol.ErrNoCamera
			resp.Status = protocol.StatusError
		case outcome == inspection.Pass:
			resp.Error = protocol.ErrUndefined
			resp.Status = protocol.StatusWorkpieceOK
		case outcome == inspection.Fail:
			resp.Error = protocol.ErrUndefined
			resp.Status = protocol.StatusWorkpieceNOK
		default:
			w.log.Error("inspection returned unknown outcome", zap.Stringer("outcome", outcome))
			resp.Error = protocol.ErrInternal
			resp.Status = protocol.StatusError
		}

	default:
		resp.Error = protocol.ErrInvalidCommand
		resp.Status = protocol.StatusError
	}

	w.log.Debug("command processed",
		zap.Stringer("command", req.Code),
		zap.Int("param", req.Parameter),
		zap.Int("workpiece_type", dev.workpieceType),
		zap.Stringer("response", *resp),
	)
}

// inspect shields the loop from a panicking inspector.
func (w *Worker) inspect(workpieceType int) (out inspection.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker: inspector panic: %v", r)
		}
	}()
	return w.insp.Inspect(workpieceType), nil
}

// publish is best-effort: a full status channel means the previous response
// was never collected, and the new one is dropped.
func (w *Worker) publish(resp protocol.StatusResponse) {
	select {
	case w.ch.Statuses <- resp:
	default:
		n := w.dropped.Add(1)
		w.log.Warn("status channel full, response dropped",
			zap.Stringer("response", resp),
			zap.Uint64("dropped_total", n),
		)
	}
}
