// internal/app/runner.go
package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tamzrod/inspection-station/internal/poller"
	"github.com/tamzrod/inspection-station/internal/station"
	"github.com/tamzrod/inspection-station/internal/writer"
)

// errorLogEvery bounds repeated transport errors in the log while a link is down.
const errorLogEvery = 5 * time.Second

// Processor is what the runner needs from the station.
type Processor interface {
	Process(commandReg uint32) uint32
}

var _ Processor = (*station.Station)(nil)

// Runner owns the poll -> station -> status loop.
type Runner struct {
	st  Processor
	sw  writer.StatusWriter
	log *zap.Logger

	pollLimit  *rate.Limiter
	writeLimit *rate.Limiter
}

// NewRunner builds a runner. log may be nil.
func NewRunner(st Processor, sw writer.StatusWriter, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		st:         st,
		sw:         sw,
		log:        log,
		pollLimit:  rate.NewLimiter(rate.Every(errorLogEvery), 1),
		writeLimit: rate.NewLimiter(rate.Every(errorLogEvery), 1),
	}
}

// Run consumes poll results until ctx ends or in closes.
// The idle status is asserted once before the first poll.
func (r *Runner) Run(ctx context.Context, in <-chan poller.PollResult) {
	r.write(r.st.Process(0))

	for {
		select {
		case <-ctx.Done():
			return

		case res, ok := <-in:
			if !ok {
				return
			}
			r.Handle(res)
		}
	}
}

// Handle processes one poll result.
func (r *Runner) Handle(res poller.PollResult) {
	if res.Err != nil {
		// Hold the last command state: an unreadable register is not a falling edge.
		if r.pollLimit.Allow() {
			r.log.Warn("command register poll failed", zap.Error(res.Err))
		}
		return
	}
	r.write(r.st.Process(res.CommandRegister))
}

func (r *Runner) write(reg uint32) {
	if err := r.sw.WriteStatus(reg); err != nil && r.writeLimit.Allow() {
		r.log.Warn("status write failed", zap.Uint32("status", reg), zap.Error(err))
	}
}

// PollSource emits poll results until ctx ends.
type PollSource interface {
	Run(ctx context.Context, out chan<- poller.PollResult)
}

// Serve runs src and r together until ctx ends. It returns only after src
// has returned, so the caller may close what src reads from.
func Serve(ctx context.Context, src PollSource, r *Runner) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make(chan poller.PollResult)
	done := make(chan struct{})
	go func() {
		defer close(done)
		src.Run(ctx, out)
	}()

	r.Run(ctx, out)
	cancel()
	<-done
}
