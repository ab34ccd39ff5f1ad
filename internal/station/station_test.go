// internal/station/station_test.go
package station

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/inspection-station/internal/protocol"
	"github.com/tamzrod/inspection-station/internal/register"
)

// ---- fakes ----

type fakeGateway struct {
	calls  []protocol.CommandRequest
	resp   protocol.StatusResponse
	resets int
}

func (f *fakeGateway) Submit(code, parameter int) (protocol.ErrorCode, protocol.StatusCode) {
	f.calls = append(f.calls, protocol.CommandRequest{Code: protocol.CommandCode(code), Parameter: parameter})
	return f.resp.Error, f.resp.Status
}

func (f *fakeGateway) Reset() { f.resets++ }

type fakeLifecycle struct {
	restarts int
	err      error
}

func (f *fakeLifecycle) Restart() error {
	f.restarts++
	return f.err
}

func cmdReg(execute bool, code protocol.CommandCode, param int) uint32 {
	return register.PackCommand(register.Command{Execute: execute, Code: code, Parameter: param})
}

// run pulses the execute bit high for one sample, then low, and returns
// the decoded status after the falling edge.
func run(s *Station, code protocol.CommandCode, param int) register.Status {
	s.Process(cmdReg(true, code, param))
	return register.UnpackStatus(s.Process(cmdReg(false, code, param)))
}

// ---- tests ----

func TestProcess_IdleBeforeAnyCommand(t *testing.T) {
	s := New(&fakeGateway{}, &fakeLifecycle{}, nil)

	st := register.UnpackStatus(s.Process(0))
	assert.True(t, st.Operational)
	assert.False(t, st.Busy)
	assert.Equal(t, protocol.ErrUndefined, st.Error)
	assert.Equal(t, protocol.StatusUndefined, st.Status)
}

func TestProcess_BusyWhileExecuteHeld(t *testing.T) {
	gw := &fakeGateway{resp: protocol.Respond(protocol.ErrUndefined, protocol.StatusWorkpieceOK)}
	s := New(gw, &fakeLifecycle{}, nil)

	for i := 0; i < 3; i++ {
		st := register.UnpackStatus(s.Process(cmdReg(true, protocol.CmdTakePicture, 0)))
		require.True(t, st.Busy)
		require.Equal(t, protocol.StatusBusy, st.Status)
	}
	assert.Empty(t, gw.calls, "command must not run before the falling edge")

	st := register.UnpackStatus(s.Process(cmdReg(false, 0, 0)))
	assert.False(t, st.Busy)
	assert.Equal(t, protocol.StatusWorkpieceOK, st.Status)
	assert.Len(t, gw.calls, 1)
}

func TestProcess_ResultHeldWhileIdle(t *testing.T) {
	gw := &fakeGateway{resp: protocol.Respond(protocol.ErrNoCamera, protocol.StatusError)}
	s := New(gw, &fakeLifecycle{}, nil)

	run(s, protocol.CmdTakePicture, 0)

	for i := 0; i < 3; i++ {
		st := register.UnpackStatus(s.Process(0))
		assert.Equal(t, protocol.ErrNoCamera, st.Error)
		assert.Equal(t, protocol.StatusError, st.Status)
	}
	assert.Len(t, gw.calls, 1, "idle samples must not re-run the command")
}

func TestProcess_LocalCommands(t *testing.T) {
	gw := &fakeGateway{}
	s := New(gw, &fakeLifecycle{}, nil)

	st := run(s, protocol.CmdPing, 0)
	assert.Equal(t, protocol.StatusPingReply, st.Status)

	st = run(s, protocol.CmdNop, 0)
	assert.Equal(t, protocol.StatusUndefined, st.Status)
	assert.Equal(t, protocol.ErrUndefined, st.Error)

	assert.Empty(t, gw.calls)
}

func TestProcess_ForwardsLatchedParameter(t *testing.T) {
	gw := &fakeGateway{resp: protocol.Respond(protocol.ErrUndefined, protocol.StatusCommandAck)}
	s := New(gw, &fakeLifecycle{}, nil)

	// The sample seen on the falling edge carries no command; the latched one runs.
	s.Process(cmdReg(true, protocol.CmdSetWorkpieceType122, 77))
	s.Process(0)

	require.Len(t, gw.calls, 1)
	assert.Equal(t, protocol.CmdSetWorkpieceType122, gw.calls[0].Code)
	assert.Equal(t, 77, gw.calls[0].Parameter)
}

func TestProcess_Reboot(t *testing.T) {
	gw := &fakeGateway{}
	life := &fakeLifecycle{}
	s := New(gw, life, nil)

	st := run(s, protocol.CmdReboot, 0)
	assert.Equal(t, protocol.StatusBooting, st.Status)
	assert.Equal(t, 1, life.restarts)
	assert.Equal(t, 1, gw.resets)
	assert.Empty(t, gw.calls)
}

func TestProcess_RebootFailure(t *testing.T) {
	gw := &fakeGateway{}
	s := New(gw, &fakeLifecycle{err: errors.New("boom")}, nil)

	st := run(s, protocol.CmdReboot, 0)
	assert.Equal(t, protocol.ErrInternal, st.Error)
	assert.Equal(t, protocol.StatusError, st.Status)
	assert.Zero(t, gw.resets)
}
