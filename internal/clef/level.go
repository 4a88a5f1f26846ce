package clef

import (
	"fmt"
	"strings"
)

// Level is the severity of an event. The set is closed; values outside the
// declared constants never come out of ResolveLevel. The zero value is
// Information, so an Event with no level reports the same level as one whose
// @l is absent.
type Level int

const (
	// Verbose is the noisiest level, used for tracing.
	Verbose Level = iota - 2
	// Debug is internal diagnostic output.
	Debug
	// Information is the default when @l is absent or unrecognised.
	Information
	// Warning indicates a degraded but functioning state.
	Warning
	// Error indicates a failed operation.
	Error
	// Fatal indicates the process could not continue.
	Fatal
)

// Levels returns every level in ascending severity.
func Levels() []Level {
	return []Level{Verbose, Debug, Information, Warning, Error, Fatal}
}

// String returns the uppercase display name, e.g. "WARNING".
func (l Level) String() string {
	switch l {
	case Verbose:
		return "VERBOSE"
	case Debug:
		return "DEBUG"
	case Information:
		return "INFORMATION"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ResolveLevel maps the raw @l text to a Level.
//
// Every character that is not an ASCII letter or digit is dropped (so JSON
// quotes and punctuation do not matter) and the rest is lowercased. The
// result is matched against the level names, then against the numeric codes
// "1" (Verbose) through "6" (Fatal). Anything else, including the empty
// string, resolves to Information.
func ResolveLevel(raw string) Level {
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			sb.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c + ('a' - 'A'))
		}
	}

	switch sb.String() {
	case "verbose", "1":
		return Verbose
	case "debug", "2":
		return Debug
	case "information", "3":
		return Information
	case "warning", "4":
		return Warning
	case "error", "5":
		return Error
	case "fatal", "6":
		return Fatal
	default:
		return Information
	}
}
