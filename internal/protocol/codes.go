// internal/protocol/codes.go
package protocol

import "fmt"

// Command, status and error vocabularies shared with the PLC.
// Numeric values are part of the wire contract and MUST NOT change.

// ---- COMMANDS ----

// CommandCode is an opaque command tag compared by value.
type CommandCode int

const (
	CmdNop                      CommandCode = 0x00
	CmdReboot                   CommandCode = 0x01
	CmdPing                     CommandCode = 0x02
	CmdSetWorkpieceTypeNone     CommandCode = 0x03
	CmdSetWorkpieceType122      CommandCode = 0x04 // prefix for plowsteel article numbers
	CmdTakePicture              CommandCode = 0x10
	CmdSetWorkpieceOrientation  CommandCode = 0x11
	CmdSetWorkpieceSerialNumber CommandCode = 0x12
)

var commandNames = map[CommandCode]string{
	CmdNop:                      "NOP",
	CmdReboot:                   "REBOOT",
	CmdPing:                     "PING",
	CmdSetWorkpieceTypeNone:     "SET_WORKPIECE_TYPE_NONE",
	CmdSetWorkpieceType122:      "SET_WORKPIECE_TYPE_122",
	CmdTakePicture:              "TAKE_PICTURE",
	CmdSetWorkpieceOrientation:  "SET_WORKPIECE_ORIENTATION",
	CmdSetWorkpieceSerialNumber: "SET_WORKPIECE_SERIAL_NUMBER",
}

// Known reports whether c belongs to the closed command set.
func (c CommandCode) Known() bool {
	_, ok := commandNames[c]
	return ok
}

func (c CommandCode) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("CommandCode(0x%02x)", int(c))
}

// ParseCommand converts a raw integer into a CommandCode.
// ok is false for values outside the closed set.
func ParseCommand(raw int) (CommandCode, bool) {
	c := CommandCode(raw)
	return c, c.Known()
}

// ---- STATUSES ----

// StatusCode is the status half of a response.
type StatusCode int

const (
	StatusUndefined     StatusCode = 0x00
	StatusBooting       StatusCode = 0x01
	StatusPingReply     StatusCode = 0x02
	StatusBusy          StatusCode = 0x03
	StatusError         StatusCode = 0x04
	StatusWorkpieceOK   StatusCode = 0x05
	StatusWorkpieceNOK  StatusCode = 0x06
	StatusWorkpieceNone StatusCode = 0x07
	StatusCommandAck    StatusCode = 0x08
)

var statusNames = map[StatusCode]string{
	StatusUndefined:     "UNDEFINED",
	StatusBooting:       "BOOTING",
	StatusPingReply:     "PING_REPLY",
	StatusBusy:          "BUSY",
	StatusError:         "ERROR",
	StatusWorkpieceOK:   "WORKPIECE_OK",
	StatusWorkpieceNOK:  "WORKPIECE_NOK",
	StatusWorkpieceNone: "WORKPIECE_NONE",
	StatusCommandAck:    "COMMAND_ACK",
}

func (s StatusCode) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("StatusCode(0x%02x)", int(s))
}

// ---- ERRORS ----

// ErrorCode is the error half of a response.
// Errors are data: they never travel as Go errors.
type ErrorCode int

const (
	ErrUndefined               ErrorCode = 0x00
	ErrInvalidCommand          ErrorCode = 0x03
	ErrInvalidParameter        ErrorCode = 0x04
	ErrNoCamera                ErrorCode = 0x05
	ErrInternal                ErrorCode = 0x06
	ErrInvalidWorkpieceSize    ErrorCode = 0x07
	ErrInvalidWorkpieceColor   ErrorCode = 0x08
	ErrInvalidWorkpieceShape   ErrorCode = 0x09
	ErrInvalidWorkpieceWeight  ErrorCode = 0x0A
	ErrInvalidWorkpieceTexture ErrorCode = 0x0B
)

var errorNames = map[ErrorCode]string{
	ErrUndefined:               "UNDEFINED",
	ErrInvalidCommand:          "INVALID_COMMAND",
	ErrInvalidParameter:        "INVALID_PARAMETER",
	ErrNoCamera:                "NO_CAMERA",
	ErrInternal:                "INTERNAL",
	ErrInvalidWorkpieceSize:    "INVALID_WORKPIECE_SIZE",
	ErrInvalidWorkpieceColor:   "INVALID_WORKPIECE_COLOR",
	ErrInvalidWorkpieceShape:   "INVALID_WORKPIECE_SHAPE",
	ErrInvalidWorkpieceWeight:  "INVALID_WORKPIECE_WEIGHT",
	ErrInvalidWorkpieceTexture: "INVALID_WORKPIECE_TEXTURE",
}

func (e ErrorCode) String() string {
	if n, ok := errorNames[e]; ok {
		return n
	}
	return fmt.Sprintf("ErrorCode(0x%02x)", int(e))
}

// ---- WORKPIECE TYPES ----

// WorkpieceNone is the device state before any SET_WORKPIECE_TYPE_* command.
const WorkpieceNone = 0

// Workpiece122 is selected by SET_WORKPIECE_TYPE_122.
const Workpiece122 = 122
