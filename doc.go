// Package jq provides Go bindings to libjq, the evaluation engine behind
// the jq command-line JSON processor.
//
// # Overview
//
// jq programs are small filter expressions that extract and transform JSON
// values. This package drives the real engine through its C API, so any
// program the jq binary accepts works here, and the output text is rendered
// by the engine itself. It provides:
//
//   - A clean, idiomatic Go API over the C state machine
//   - Compile-once, run-many program reuse
//   - A closed error taxonomy in place of the engine's halt/exit-code protocol
//   - Strict handle hygiene: every engine value is released exactly once
//
// # Quick Start
//
//	import "github.com/jq-go/jq"
//
//	func main() {
//	    out, err := jq.Run(".name", `{"name": "fred", "id": 7}`)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(out) // "fred"
//	}
//
// # Reusing a Program
//
// When the same filter runs against many inputs, compile it once:
//
//	prog, err := jq.Compile("[.[].title] | sort")
//	if err != nil {
//	    return err
//	}
//	defer prog.Close()
//
//	shows, _ := prog.Run(tvShows)
//	films, _ := prog.Run(movies)
//
// Each run is independent; a run that fails does not affect later runs on
// the same Program.
//
// # Output
//
// A run returns zero or more serialized values, newline-joined in emission
// order with no trailing newline:
//
//	jq.Run(".[]", "[1,2,3]") // "1\n2\n3"
//
// Empty or whitespace-only input returns "" without error. Output is plain
// text, just as with the jq binary; pair this package with encoding/json
// when structured data is needed afterwards.
//
// # Errors
//
// Failures classify against four sentinels with [errors.Is]:
// [ErrInvalidProgram] for programs that do not compile, [ErrSystem] for
// malformed input and runtime evaluation failures, [ErrStringConversion]
// for text that cannot cross the C boundary, and [ErrUnknown] for anything
// else the engine reports.
//
// # Linking to libjq
//
// The package links against a system-installed libjq with cgo (-ljq). The
// development headers (jq.h, jv.h) must be available at build time; on most
// distributions they ship in a libjq-dev or jq-devel package.
package jq
