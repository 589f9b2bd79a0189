package jq

import (
	"errors"
	"fmt"
)

// The wrapper collapses everything the engine can report into four error
// classes. Callers classify with [errors.Is] and unwrap causes with
// [errors.Unwrap]; the raw engine signals (halt flags, invalid markers,
// numeric exit codes) never escape this package.
var (
	// ErrInvalidProgram reports that the jq program failed to compile.
	// The engine rarely supplies a useful diagnostic at this stage, so the
	// message is best-effort.
	ErrInvalidProgram = errors.New("jq: program failed to compile")

	// ErrSystem reports a failure raised by the jq state machine itself.
	// This covers malformed input, runtime evaluation errors, and failure
	// to initialize the machine in the first place. When the engine
	// supplied feedback it is included in the message.
	ErrSystem = errors.New("jq: system error")

	// ErrStringConversion reports text that could not cross the C
	// boundary: embedded NUL bytes on the way in, or invalid UTF-8 on the
	// way out. The underlying conversion failure is wrapped as the cause.
	ErrStringConversion = errors.New("jq: string conversion")

	// ErrUnknown covers any engine condition that maps to no other class.
	ErrUnknown = errors.New("jq: unknown error")
)

var (
	errInteriorNUL = errors.New("string contains an interior NUL byte")
	errInvalidUTF8 = errors.New("string is not valid UTF-8")
)

// invalidProgramError wraps ErrInvalidProgram with engine feedback when
// available.
func invalidProgramError(reason string) error {
	if reason == "" {
		return ErrInvalidProgram
	}
	return fmt.Errorf("%w: %s", ErrInvalidProgram, reason)
}

// systemError wraps ErrSystem with engine feedback when available.
func systemError(reason string) error {
	if reason == "" {
		return ErrSystem
	}
	return fmt.Errorf("%w: %s", ErrSystem, reason)
}

// conversionError chains cause behind ErrStringConversion so errors.Is
// matches either.
func conversionError(cause error) error {
	return fmt.Errorf("%w: %w", ErrStringConversion, cause)
}

func unknownError(reason string) error {
	if reason == "" {
		return ErrUnknown
	}
	return fmt.Errorf("%w: %s", ErrUnknown, reason)
}
