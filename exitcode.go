package jq

// exitCode mirrors the engine's halt status enumeration, the same numeric
// protocol the jq binary uses for its process exit code. The raw numbers
// never leave this file; everything downstream works with the enumeration or
// the error it converts to.
type exitCode int

const (
	exitOK           exitCode = 0
	exitOKNull       exitCode = -1
	exitOKNoOutput   exitCode = -4
	exitErrorSystem  exitCode = 2
	exitErrorCompile exitCode = 3
	exitErrorUnknown exitCode = 5
)

// exitCodeFromNumber maps the engine's signed numeric code onto the closed
// enumeration. Unrecognized codes collapse to exitErrorUnknown.
func exitCodeFromNumber(n float64) exitCode {
	switch c := exitCode(int(n)); c {
	case exitOK, exitOKNull, exitOKNoOutput, exitErrorSystem, exitErrorCompile:
		return c
	default:
		return exitErrorUnknown
	}
}

// err converts an error-class exit code into the wrapper's error taxonomy.
// reason is the diagnostic carried by the halt sentinel, when there was one.
// The OK family returns nil: those halts are successful terminations.
func (c exitCode) err(reason string) error {
	switch c {
	case exitErrorSystem:
		return systemError(reason)
	case exitErrorCompile:
		return invalidProgramError(reason)
	case exitErrorUnknown:
		return unknownError(reason)
	default:
		return nil
	}
}
