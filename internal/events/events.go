// internal/events/events.go
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/protocol"
)

// Exchange is one completed command/response pair, as published.
type Exchange struct {
	Station   string    `msgpack:"station"`
	At        time.Time `msgpack:"at"`
	Command   string    `msgpack:"command"`
	Code      int       `msgpack:"code"`
	Parameter int       `msgpack:"parameter"`
	Error     string    `msgpack:"error"`
	ErrorCode int       `msgpack:"error_code"`
	Status    string    `msgpack:"status"`
	StatusVal int       `msgpack:"status_code"`
}

// NewExchange captures a request and its response.
func NewExchange(station string, req protocol.CommandRequest, resp protocol.StatusResponse) Exchange {
	e, s := resp.Ints()
	return Exchange{
		Station:   station,
		At:        time.Now().UTC(),
		Command:   req.Code.String(),
		Code:      int(req.Code),
		Parameter: req.Parameter,
		Error:     resp.Error.String(),
		ErrorCode: e,
		Status:    resp.Status.String(),
		StatusVal: s,
	}
}

// Encode serializes an exchange with msgpack.
func Encode(x Exchange) ([]byte, error) {
	return msgpack.Marshal(x)
}

// Decode is the inverse of Encode.
func Decode(b []byte) (Exchange, error) {
	var x Exchange
	err := msgpack.Unmarshal(b, &x)
	return x, err
}

// Publisher ships exchanges somewhere.
type Publisher interface {
	Publish(x Exchange) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) Publish(Exchange) error { return nil }
func (Nop) Close() error           { return nil }

// queueSize bounds exchanges waiting for the publisher.
const queueSize = 64

// Recorder turns gateway exchanges into published events.
// Exchanged never blocks: events are queued and shipped by one goroutine;
// a full queue drops the event. Failures are logged and never reach the
// command path.
type Recorder struct {
	station string
	pub     Publisher
	log     *zap.Logger

	queue   chan Exchange
	wg      sync.WaitGroup
	once    sync.Once
	dropped atomic.Uint64
}

// NewRecorder starts the shipping goroutine. Close stops it.
func NewRecorder(station string, pub Publisher, log *zap.Logger) *Recorder {
	if pub == nil {
		pub = Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Recorder{
		station: station,
		pub:     pub,
		log:     log,
		queue:   make(chan Exchange, queueSize),
	}
	r.wg.Add(1)
	go r.ship()
	return r
}

// Exchanged implements gateway.Observer.
func (r *Recorder) Exchanged(req protocol.CommandRequest, resp protocol.StatusResponse) {
	select {
	case r.queue <- NewExchange(r.station, req, resp):
	default:
		r.dropped.Add(1)
		r.log.Warn("event queue full, dropping exchange", zap.Stringer("command", req.Code))
	}
}

// Dropped reports events lost to a full queue.
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }

// Close flushes queued events and closes the publisher.
// Exchanged must not be called after Close.
func (r *Recorder) Close() error {
	var err error
	r.once.Do(func() {
		close(r.queue)
		r.wg.Wait()
		err = r.pub.Close()
	})
	return err
}

func (r *Recorder) ship() {
	defer r.wg.Done()
	for x := range r.queue {
		if err := r.pub.Publish(x); err != nil {
			r.log.Warn("event publish failed", zap.String("command", x.Command), zap.Error(err))
		}
	}
}
