package jq

/*
#cgo LDFLAGS: -ljq
#include <jq.h>
#include <jv.h>
#include <stdlib.h>
*/
import "C"

import (
	"strings"
	"unicode/utf8"
	"unsafe"
)

// This file is the only one that talks to libjq directly. The jv calling
// convention is the tricky part: most engine calls CONSUME the jv argument
// (the callee frees it), a few only borrow it. Every consuming call below is
// marked as such, and a handle that is still needed after one is cloned
// first. The rule enforced throughout: each logically owned handle is freed
// exactly once, on every path.

// -----------------------------------------------------------------------------
// value - one refcounted jv handle
// -----------------------------------------------------------------------------

// value wraps one opaque, engine-managed jv. A value is either valid
// (number, string, object, ...) or invalid, optionally carrying a diagnostic
// message. The zero value must never be freed or inspected.
type value struct {
	jv C.jv
}

// clone returns a second independent owner of the underlying jv by bumping
// its refcount. Never a deep copy.
func (v value) clone() value {
	return value{jv: C.jv_copy(v.jv)}
}

// free releases this owner's reference.
func (v value) free() {
	C.jv_free(v.jv)
}

// valid reports whether the value is inspectable. jv_get_kind borrows.
func (v value) valid() bool {
	return C.jv_get_kind(v.jv) != C.JV_KIND_INVALID
}

// number extracts the numeric value, failing when the kind differs.
func (v value) number() (float64, error) {
	if C.jv_get_kind(v.jv) != C.JV_KIND_NUMBER {
		return 0, unknownError("value is not a number")
	}
	return float64(C.jv_number_value(v.jv)), nil
}

// str extracts the string value, failing when the kind differs.
// jv_string_value borrows; the returned C pointer is only read while v is
// still owned.
func (v value) str() (string, error) {
	if C.jv_get_kind(v.jv) != C.JV_KIND_STRING {
		return "", unknownError("value is not a string")
	}
	return gostring(C.jv_string_value(v.jv))
}

// dump renders the canonical serialized form of the value, the same text the
// jq binary prints. jv_dump_string consumes its argument, so the handle is
// cloned for the call; the rendering it returns is itself a jv that must be
// freed here.
func (v value) dump() (string, error) {
	d := value{jv: C.jv_dump_string(C.jv_copy(v.jv), 0)}
	defer d.free()
	return d.str()
}

// message extracts the diagnostic carried by an invalid value, if any.
// Both jv_invalid_has_msg and jv_invalid_get_msg consume their argument,
// hence the clones.
func (v value) message() (string, bool) {
	if C.jv_invalid_has_msg(C.jv_copy(v.jv)) == 0 {
		return "", false
	}
	msg := value{jv: C.jv_invalid_get_msg(C.jv_copy(v.jv))}
	defer msg.free()
	// The message is normally a string, but the engine allows arbitrary
	// values here (error(.) with a non-string argument).
	s, err := msg.str()
	if err != nil {
		s, err = msg.dump()
	}
	if err != nil {
		return "", false
	}
	return s, true
}

// -----------------------------------------------------------------------------
// parser - incremental JSON parser
// -----------------------------------------------------------------------------

// parser owns one streaming jv_parser. Buffers are always pushed with the
// "more data may follow" flag: marking a buffer final would end the parser's
// life with that buffer and preclude reusing one parser/program pair across
// sequential runs.
type parser struct {
	ptr  *C.jv_parser
	used bool
}

func newParser() *parser {
	return &parser{ptr: C.jv_parser_new(0)}
}

func (p *parser) close() {
	if p.ptr != nil {
		C.jv_parser_free(p.ptr)
		p.ptr = nil
	}
}

// reset discards all incremental state left by the previous buffer.
//
// Because buffers are never marked final, a malformed or truncated input
// such as "{" leaves the parser mid-value, waiting for the rest. That state
// is invisible from outside: the engine hands back the same message-less
// invalid sentinel for a cleanly exhausted buffer and for a dangling partial
// one. Carrying it forward would let one run's input complete another's
// ("{" then "}" parsing as "{}"), so each run starts from a fresh parse
// state.
func (p *parser) reset() {
	C.jv_parser_free(p.ptr)
	p.ptr = C.jv_parser_new(0)
}

// parse pushes input into the parser and pulls exactly one top-level value.
// Any further top-level values in the same buffer are ignored.
//
// The caller owns the returned value.
func (p *parser) parse(input string) (value, error) {
	if p.used {
		p.reset()
	}
	p.used = true

	buf, err := cstring(input)
	if err != nil {
		return value{}, err
	}
	defer C.free(unsafe.Pointer(buf))

	// The buffer must stay alive across both calls.
	C.jv_parser_set_buf(p.ptr, buf, C.int(len(input)), 0)

	v := value{jv: C.jv_parser_next(p.ptr)}
	if !v.valid() {
		defer v.free()
		if msg, ok := v.message(); ok {
			return value{}, systemError(msg)
		}
		return value{}, systemError("parser error")
	}
	return v, nil
}

// -----------------------------------------------------------------------------
// state - one jq evaluation state machine
// -----------------------------------------------------------------------------

// state owns one jq_state instance. Instances are fully independent; the
// engine keeps no state shared between them. Not safe for concurrent use.
type state struct {
	ptr *C.jq_state
}

// newState initializes a fresh engine state machine.
func newState() (*state, error) {
	ptr := C.jq_init()
	if ptr == nil {
		return nil, systemError("failed to init")
	}
	return &state{ptr: ptr}, nil
}

// close tears the state machine down. Safe to call more than once.
func (s *state) close() {
	if s.ptr != nil {
		C.jq_teardown(&s.ptr)
		s.ptr = nil
	}
}

// compile loads a jq program into the state machine.
func (s *state) compile(program string) error {
	prog, err := cstring(program)
	if err != nil {
		return err
	}
	defer C.free(unsafe.Pointer(prog))

	if C.jq_compile(s.ptr, prog) == 0 {
		return ErrInvalidProgram
	}
	return nil
}

func (s *state) halted() bool {
	return C.jq_halted(s.ptr) != 0
}

// exitCode interprets the engine's halt status. The accessor hands back a jv
// rather than a plain number: a valid value means the halt was an ordinary
// successful termination, an invalid one carries the numeric code.
func (s *state) exitCode() exitCode {
	code := value{jv: C.jq_get_exit_code(s.ptr)}
	defer code.free()

	if code.valid() {
		return exitOK
	}
	n, err := code.number()
	if err != nil {
		return exitErrorUnknown
	}
	return exitCodeFromNumber(n)
}

// execute runs one evaluation of the compiled program against input,
// draining every emitted output into a newline-joined buffer. Ownership of
// input transfers to jq_start; it must not be read or freed here afterwards.
func (s *state) execute(input value) (string, error) {
	var buf strings.Builder

	C.jq_start(s.ptr, input.jv, 0)

	out := value{jv: C.jq_next(s.ptr)}
	for out.valid() {
		text, err := out.dump()
		out.free()
		if err != nil {
			return "", err
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
		out = value{jv: C.jq_next(s.ptr)}
	}
	// out is now the terminal sentinel.
	defer out.free()

	if s.halted() {
		reason, _ := out.message()
		if err := s.exitCode().err(reason); err != nil {
			return "", err
		}
	} else if reason, ok := out.message(); ok {
		return "", systemError(reason)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// -----------------------------------------------------------------------------
// String conversion across the C boundary
// -----------------------------------------------------------------------------

// cstring copies s to a NUL-terminated C string. The engine reads up to the
// first NUL, so embedded NUL bytes cannot cross the boundary. The caller
// frees the result.
func cstring(s string) (*C.char, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, conversionError(errInteriorNUL)
	}
	return C.CString(s), nil
}

// gostring copies a NUL-terminated C string back into Go, requiring valid
// UTF-8 so the engine can never smuggle undecodable bytes into results or
// error messages.
func gostring(c *C.char) (string, error) {
	s := C.GoString(c)
	if !utf8.ValidString(s) {
		return "", conversionError(errInvalidUTF8)
	}
	return s, nil
}
