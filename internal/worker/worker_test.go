// internal/worker/worker_test.go
package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/inspection-station/internal/inspection"
	"github.com/tamzrod/inspection-station/internal/protocol"
)

// ---- helpers ----

// recordingInspector returns a fixed outcome and remembers what it was asked.
type recordingInspector struct {
	outcome inspection.Outcome
	seen    chan int
}

func newRecordingInspector(o inspection.Outcome) *recordingInspector {
	return &recordingInspector{outcome: o, seen: make(chan int, 16)}
}

func (r *recordingInspector) Inspect(wp int) inspection.Outcome {
	r.seen <- wp
	return r.outcome
}

func startWorker(t *testing.T, insp inspection.Inspector) (Channels, *Signal, *Worker, chan struct{}) {
	t.Helper()

	ch := NewChannels()
	stop := NewSignal()
	w, err := New(Config{IdleTick: 5 * time.Millisecond}, ch, stop, insp, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run()
	}()

	t.Cleanup(func() {
		stop.Set()
		<-done
	})
	return ch, stop, w, done
}

func exchange(t *testing.T, ch Channels, code protocol.CommandCode) protocol.StatusResponse {
	t.Helper()

	ch.Commands <- protocol.CommandRequest{Code: code}
	select {
	case resp := <-ch.Statuses:
		return resp
	case <-time.After(2 * time.Second):
		t.Fatalf("no response for %s", code)
		return protocol.StatusResponse{}
	}
}

// ---- tests ----

func TestNew_RequiresDependencies(t *testing.T) {
	insp := inspection.Func(func(int) inspection.Outcome { return inspection.Pass })

	_, err := New(Config{}, Channels{}, NewSignal(), insp, nil)
	assert.Error(t, err)

	_, err = New(Config{}, NewChannels(), nil, insp, nil)
	assert.Error(t, err)

	_, err = New(Config{}, NewChannels(), NewSignal(), nil, nil)
	assert.Error(t, err)

	w, err := New(Config{}, NewChannels(), NewSignal(), insp, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultIdleTick, w.cfg.IdleTick)
}

func TestWorker_SetWorkpieceTypeAcks(t *testing.T) {
	ch, _, _, _ := startWorker(t, newRecordingInspector(inspection.Pass))

	resp := exchange(t, ch, protocol.CmdSetWorkpieceType122)
	assert.Equal(t, protocol.Respond(protocol.ErrUndefined, protocol.StatusCommandAck), resp)
}

func TestWorker_WorkpieceTypePersists(t *testing.T) {
	insp := newRecordingInspector(inspection.Fail)
	ch, _, _, _ := startWorker(t, insp)

	exchange(t, ch, protocol.CmdTakePicture)
	assert.Equal(t, protocol.WorkpieceNone, <-insp.seen)

	exchange(t, ch, protocol.CmdSetWorkpieceType122)
	for i := 0; i < 3; i++ {
		exchange(t, ch, protocol.CmdTakePicture)
		assert.Equal(t, protocol.Workpiece122, <-insp.seen)
	}
}

func TestWorker_OutcomeMapping(t *testing.T) {
	cases := []struct {
		outcome inspection.Outcome
		want    protocol.StatusResponse
	}{
		{inspection.Unavailable, protocol.Respond(protocol.ErrNoCamera, protocol.StatusError)},
		{inspection.Pass, protocol.Respond(protocol.ErrUndefined, protocol.StatusWorkpieceOK)},
		{inspection.Fail, protocol.Respond(protocol.ErrUndefined, protocol.StatusWorkpieceNOK)},
		{inspection.Outcome(42), protocol.Respond(protocol.ErrInternal, protocol.StatusError)},
	}

	for _, tc := range cases {
		t.Run(tc.outcome.String(), func(t *testing.T) {
			ch, _, _, _ := startWorker(t, newRecordingInspector(tc.outcome))
			assert.Equal(t, tc.want, exchange(t, ch, protocol.CmdTakePicture))
		})
	}
}

func TestWorker_UnhandledCommandsAreInvalid(t *testing.T) {
	ch, _, _, _ := startWorker(t, newRecordingInspector(inspection.Pass))

	for _, code := range []protocol.CommandCode{
		protocol.CmdNop,
		protocol.CmdPing,
		protocol.CmdSetWorkpieceTypeNone,
		protocol.CmdSetWorkpieceOrientation,
		protocol.CommandCode(0x77),
	} {
		assert.Equal(t, protocol.InvalidCommand, exchange(t, ch, code), "code=%s", code)
	}
}

func TestWorker_InspectorPanicBecomesInternal(t *testing.T) {
	ch, _, _, _ := startWorker(t, inspection.Func(func(int) inspection.Outcome {
		panic("camera driver exploded")
	}))

	assert.Equal(t, protocol.Respond(protocol.ErrInternal, protocol.StatusError), exchange(t, ch, protocol.CmdTakePicture))

	// loop survives
	assert.Equal(t, protocol.Respond(protocol.ErrUndefined, protocol.StatusCommandAck), exchange(t, ch, protocol.CmdSetWorkpieceType122))
}

func TestWorker_DropsResponseWhenStatusChannelFull(t *testing.T) {
	ch, _, w, _ := startWorker(t, newRecordingInspector(inspection.Pass))

	// First response is left uncollected.
	ch.Commands <- protocol.CommandRequest{Code: protocol.CmdSetWorkpieceType122}
	require.Eventually(t, func() bool { return len(ch.Statuses) == 1 }, time.Second, time.Millisecond)

	ch.Commands <- protocol.CommandRequest{Code: protocol.CmdTakePicture}
	require.Eventually(t, func() bool { return w.Stats().Dropped == 1 }, time.Second, time.Millisecond)

	// The surviving response is the first one.
	assert.Equal(t, protocol.StatusCommandAck, (<-ch.Statuses).Status)
	assert.Equal(t, uint64(2), w.Stats().Processed)
}

func TestWorker_StopsWhenSignalled(t *testing.T) {
	ch := NewChannels()
	stop := NewSignal()
	// Long idle tick: exit must come from the wake-up, not the tick.
	w, err := New(Config{IdleTick: time.Hour}, ch, stop, newRecordingInspector(inspection.Pass), nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run()
	}()

	stop.Set()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestSignal_ClearForgetsWake(t *testing.T) {
	s := NewSignal()
	s.Set()
	assert.True(t, s.IsSet())

	s.Clear()
	assert.False(t, s.IsSet())
	select {
	case <-s.Wake():
		t.Fatal("stale wake after Clear")
	default:
	}
}

func TestChannels_Drain(t *testing.T) {
	ch := NewChannels()
	ch.Commands <- protocol.CommandRequest{Code: protocol.CmdPing}
	ch.Statuses <- protocol.InvalidCommand

	c, s := ch.Drain()
	assert.Equal(t, 1, c)
	assert.Equal(t, 1, s)
	assert.Zero(t, len(ch.Commands))
	assert.Zero(t, len(ch.Statuses))
}
