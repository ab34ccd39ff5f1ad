// internal/inspection/inspection.go
package inspection

// Outcome is the result of one inspection attempt.
type Outcome int

const (
	// Unavailable means no camera answered. Retryable.
	Unavailable Outcome = iota
	Pass
	Fail
)

func (o Outcome) String() string {
	switch o {
	case Unavailable:
		return "unavailable"
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Inspector is the camera capability consumed by the worker.
// Implementations are called from the worker goroutine only.
type Inspector interface {
	Inspect(workpieceType int) Outcome
}

// Func adapts a plain function to Inspector.
type Func func(workpieceType int) Outcome

func (f Func) Inspect(workpieceType int) Outcome { return f(workpieceType) }
