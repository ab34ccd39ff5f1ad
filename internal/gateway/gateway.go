// internal/gateway/gateway.go
package gateway

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/protocol"
	"github.com/tamzrod/inspection-station/internal/worker"
)

// Observer is told about every completed exchange.
// It runs on the caller's goroutine and must not block.
type Observer interface {
	Exchanged(req protocol.CommandRequest, resp protocol.StatusResponse)
}

// Gateway is the single entry point for the controller.
// It is the only producer on the command channel and the only consumer on
// the status channel. Callers should not overlap Submit calls: the
// capacity-1 channels give no ordering guarantee between concurrent callers.
type Gateway struct {
	ch  worker.Channels
	obs Observer
	log *zap.Logger

	// stale is set when SubmitContext gave up after enqueueing a command;
	// the next exchange discards that late response first.
	stale bool
}

// New builds a gateway over the given channels. obs and log may be nil.
func New(ch worker.Channels, obs Observer, log *zap.Logger) (*Gateway, error) {
	if ch.Commands == nil || ch.Statuses == nil {
		return nil, errors.New("gateway: channels required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{ch: ch, obs: obs, log: log}, nil
}

// Submit forwards one raw command and blocks until its response arrives.
// An unrecognized code is answered locally with (INVALID_COMMAND, ERROR).
// There is no timeout: if the worker is gone, Submit blocks forever.
func (g *Gateway) Submit(code, parameter int) (protocol.ErrorCode, protocol.StatusCode) {
	req, ok := g.validate(code, parameter)
	if !ok {
		return protocol.InvalidCommand.Error, protocol.InvalidCommand.Status
	}

	if g.stale {
		<-g.ch.Statuses
		g.stale = false
	}

	g.ch.Commands <- req
	resp := <-g.ch.Statuses

	g.done(req, resp)
	return resp.Error, resp.Status
}

// SubmitContext is Submit bounded by ctx. It returns ctx.Err() when the
// context ends before the response arrives.
func (g *Gateway) SubmitContext(ctx context.Context, code, parameter int) (protocol.ErrorCode, protocol.StatusCode, error) {
	req, ok := g.validate(code, parameter)
	if !ok {
		return protocol.InvalidCommand.Error, protocol.InvalidCommand.Status, nil
	}

	if g.stale {
		select {
		case <-g.ch.Statuses:
			g.stale = false
		case <-ctx.Done():
			return protocol.ErrUndefined, protocol.StatusUndefined, ctx.Err()
		}
	}

	select {
	case g.ch.Commands <- req:
	case <-ctx.Done():
		return protocol.ErrUndefined, protocol.StatusUndefined, ctx.Err()
	}

	select {
	case resp := <-g.ch.Statuses:
		g.done(req, resp)
		return resp.Error, resp.Status, nil
	case <-ctx.Done():
		// The worker still owes a response for req.
		g.stale = true
		g.log.Warn("gave up waiting for response",
			zap.Stringer("command", req.Code),
			zap.Error(ctx.Err()),
		)
		return protocol.ErrUndefined, protocol.StatusUndefined, ctx.Err()
	}
}

// Reset forgets a response still owed to an abandoned SubmitContext.
// Call it after the channels were drained, e.g. across a worker restart.
func (g *Gateway) Reset() {
	g.stale = false
}

func (g *Gateway) validate(code, parameter int) (protocol.CommandRequest, bool) {
	cmd, ok := protocol.ParseCommand(code)
	if !ok {
		g.log.Debug("rejecting unknown command", zap.Int("code", code), zap.Int("param", parameter))
		return protocol.CommandRequest{}, false
	}
	return protocol.CommandRequest{Code: cmd, Parameter: parameter}, true
}

func (g *Gateway) done(req protocol.CommandRequest, resp protocol.StatusResponse) {
	g.log.Debug("exchange complete",
		zap.Stringer("command", req.Code),
		zap.Int("param", req.Parameter),
		zap.Stringer("error", resp.Error),
		zap.Stringer("status", resp.Status),
	)
	if g.obs != nil {
		g.obs.Exchanged(req, resp)
	}
}
