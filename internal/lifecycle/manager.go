// internal/lifecycle/manager.go
package lifecycle

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/worker"
)

// ErrAlreadyRunning is returned by Start when the worker is up.
var ErrAlreadyRunning = errors.New("lifecycle: worker already running")

// Runner is the worker loop as seen by the manager.
type Runner interface {
	Run()
}

// Manager starts the worker goroutine and joins it on shutdown.
// It supervises the stop signal but never touches the per-command path.
type Manager struct {
	run  Runner
	ch   worker.Channels
	stop *worker.Signal
	log  *zap.Logger

	mu   sync.Mutex
	done chan struct{} // nil when not started
}

// New builds a manager. ch is drained on every Start.
func New(run Runner, ch worker.Channels, stop *worker.Signal, log *zap.Logger) (*Manager, error) {
	if run == nil {
		return nil, errors.New("lifecycle: runner required")
	}
	if stop == nil {
		return nil, errors.New("lifecycle: stop signal required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{run: run, ch: ch, stop: stop, log: log}, nil
}

// Start clears the stop signal and launches the worker.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done != nil {
		select {
		case <-m.done:
			// previous loop exited on its own; fine to start again
		default:
			return ErrAlreadyRunning
		}
	}

	m.stop.Clear()

	// Leftovers belong to a previous incarnation.
	if m.ch.Commands != nil {
		if c, s := m.ch.Drain(); c+s > 0 {
			m.log.Warn("discarded stale channel entries", zap.Int("commands", c), zap.Int("statuses", s))
		}
	}

	done := make(chan struct{})
	m.done = done

	go func() {
		defer close(done)
		m.run.Run()
	}()

	m.log.Info("worker started")
	return nil
}

// Stop signals the worker and waits, without bound, for it to exit.
// Safe to call repeatedly and before Start.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done == nil {
		return
	}

	m.log.Debug("setting stop signal")
	m.stop.Set()
	<-m.done
	m.done = nil

	m.log.Info("worker stopped")
}

// Restart stops and starts the worker. The worker comes back with fresh
// device state. A response abandoned before the restart is never sent, so
// a gateway on the same channels must be Reset afterwards.
func (m *Manager) Restart() error {
	m.Stop()
	return m.Start()
}

// Running reports whether the worker goroutine is alive.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done == nil {
		return false
	}
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}
