// internal/station/station.go
package station

import (
	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/protocol"
	"github.com/tamzrod/inspection-station/internal/register"
)

// Gateway is the part of the controller gateway the station uses.
type Gateway interface {
	Submit(code, parameter int) (protocol.ErrorCode, protocol.StatusCode)
	Reset()
}

// Lifecycle restarts the worker for REBOOT.
type Lifecycle interface {
	Restart() error
}

// Station turns command register samples into status register values.
//
// A command is latched while the execute bit is high and runs on the
// falling edge. NOP, PING and REBOOT are answered here; everything else is
// forwarded to the worker through the gateway.
//
// Not safe for concurrent use: one poll loop owns it.
type Station struct {
	gw   Gateway
	life Lifecycle
	log  *zap.Logger

	executing bool
	latched   register.Command
	last      protocol.StatusResponse
}

// New builds a station. log may be nil.
func New(gw Gateway, life Lifecycle, log *zap.Logger) *Station {
	if log == nil {
		log = zap.NewNop()
	}
	return &Station{gw: gw, life: life, log: log}
}

// Process consumes one command register sample and returns the status
// register to publish.
func (s *Station) Process(commandReg uint32) uint32 {
	cmd := register.UnpackCommand(commandReg)

	switch {
	case cmd.Execute:
		if !s.executing {
			s.log.Debug("command latched", zap.Stringer("command", cmd.Code), zap.Int("param", cmd.Parameter))
		}
		s.executing = true
		s.latched = cmd
		return register.PackStatus(register.Status{
			Operational: true,
			Busy:        true,
			Error:       protocol.ErrUndefined,
			Status:      protocol.StatusBusy,
		})

	case s.executing:
		s.executing = false
		s.last = s.execute(s.latched)
	}

	return register.PackStatus(register.Status{
		Operational: true,
		Error:       s.last.Error,
		Status:      s.last.Status,
	})
}

// Last returns the most recent command result.
func (s *Station) Last() protocol.StatusResponse {
	return s.last
}

func (s *Station) execute(cmd register.Command) protocol.StatusResponse {
	var resp protocol.StatusResponse

	switch cmd.Code {
	case protocol.CmdNop:
		resp = protocol.Respond(protocol.ErrUndefined, protocol.StatusUndefined)

	case protocol.CmdPing:
		resp = protocol.Respond(protocol.ErrUndefined, protocol.StatusPingReply)

	case protocol.CmdReboot:
		resp = s.reboot()

	default:
		e, st := s.gw.Submit(int(cmd.Code), cmd.Parameter)
		resp = protocol.Respond(e, st)
	}

	s.log.Info("command executed",
		zap.Stringer("command", cmd.Code),
		zap.Int("param", cmd.Parameter),
		zap.Stringer("error", resp.Error),
		zap.Stringer("status", resp.Status),
	)
	return resp
}

func (s *Station) reboot() protocol.StatusResponse {
	if s.life == nil {
		return protocol.Respond(protocol.ErrInternal, protocol.StatusError)
	}
	if err := s.life.Restart(); err != nil {
		s.log.Error("reboot failed", zap.Error(err))
		return protocol.Respond(protocol.ErrInternal, protocol.StatusError)
	}
	// Channels were drained by the restart.
	s.gw.Reset()
	return protocol.Respond(protocol.ErrUndefined, protocol.StatusBooting)
}
