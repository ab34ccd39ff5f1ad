// internal/protocol/messages.go
package protocol

import "fmt"

// CommandRequest is created per Submit and consumed exactly once by the worker.
type CommandRequest struct {
	Code      CommandCode
	Parameter int
}

func (r CommandRequest) String() string {
	return fmt.Sprintf("%s(param=%d)", r.Code, r.Parameter)
}

// StatusResponse is the (error, status) pair answering one CommandRequest.
type StatusResponse struct {
	Error  ErrorCode
	Status StatusCode
}

// Respond builds a StatusResponse.
func Respond(e ErrorCode, s StatusCode) StatusResponse {
	return StatusResponse{Error: e, Status: s}
}

// Ints returns the pair as plain integers, error first.
func (r StatusResponse) Ints() (int, int) {
	return int(r.Error), int(r.Status)
}

func (r StatusResponse) String() string {
	return fmt.Sprintf("%s, %s", r.Error, r.Status)
}

// InvalidCommand is the answer to any command the receiver cannot handle.
var InvalidCommand = StatusResponse{Error: ErrInvalidCommand, Status: StatusError}
