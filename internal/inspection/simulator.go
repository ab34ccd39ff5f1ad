// internal/inspection/simulator.go
package inspection

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Simulation odds. A camera is missing 1 time in 10; a present camera
// passes 1 time in 3 so retry logic on the PLC side gets exercised.
const (
	noCameraOneIn = 10
	passOneIn     = 3
)

// Simulator stands in for a real camera.
// It is not safe for concurrent use.
type Simulator struct {
	rng *rand.Rand
	log *zap.Logger
}

// NewSimulator builds a simulator. seed 0 seeds from the clock.
func NewSimulator(seed int64, log *zap.Logger) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Simulator{
		rng: rand.New(rand.NewSource(seed)),
		log: log,
	}
}

// Inspect draws an outcome for the given workpiece type.
func (s *Simulator) Inspect(workpieceType int) Outcome {
	s.log.Debug("simulated inspection", zap.Int("workpiece_type", workpieceType))

	if s.rng.Intn(noCameraOneIn) == 0 {
		s.log.Debug("no camera present")
		return Unavailable
	}

	if s.rng.Intn(passOneIn) == 0 {
		return Pass
	}
	return Fail
}
