// internal/register/constants.go
package register

// PLC register layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- COMMAND REGISTER (PLC -> station) ----
//
// | 1 bit   | 8 bits  | 23 bits   |
// | Execute | Command | Parameter |

const (
	cmdExecuteShift = 31
	cmdCodeShift    = 23
	cmdCodeMask     = 0xFF
	cmdParamMask    = 0x7FFFFF
)

// MaxParameter is the largest parameter a command register can carry.
const MaxParameter = cmdParamMask

// ---- STATUS REGISTER (station -> PLC) ----
//
// | 1 bit       | 1 bit | 8 bits | 22 bits           |
// | Operational | Busy  | Error  | Additional status |

const (
	stOperationalShift = 31
	stBusyShift        = 30
	stErrorShift       = 22
	stErrorMask        = 0xFF
	stAdditionalMask   = 0x3FFFFF
)

// ---- MODBUS GEOMETRY ----

// WordsPerRegister is the number of 16-bit holding registers per 32-bit
// register. High word first.
const WordsPerRegister = 2

// StationNameWords is the number of holding registers reserved for the
// station name, directly after the status register.
const StationNameWords = 8

// StationNameMaxChars is the maximum number of ASCII characters stored.
const StationNameMaxChars = StationNameWords * 2

// StatusBlockWords is the full status block: status register + name.
const StatusBlockWords = WordsPerRegister + StationNameWords
