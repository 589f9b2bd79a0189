package jq

import "strings"

// Program is a compiled jq filter, ready to run against any number of
// inputs.
//
// Create a Program with [Compile] and always call [Program.Close] when done.
// A Program is not safe for concurrent use from multiple goroutines: the
// underlying state machine is not reentrant. Serialize calls externally or
// compile one Program per goroutine.
//
//	prog, err := jq.Compile(".[] | .name")
//	if err != nil {
//	    return err
//	}
//	defer prog.Close()
//	out, err := prog.Run(`[{"name": "a"}, {"name": "b"}]`)
type Program struct {
	state  *state
	parser *parser
}

// Run compiles program and evaluates it against input in one call.
//
// For repeated evaluation of the same program, [Compile] the program once
// and reuse it; the result is identical.
func Run(program, input string) (string, error) {
	prog, err := Compile(program)
	if err != nil {
		return "", err
	}
	defer prog.Close()
	return prog.Run(input)
}

// Compile compiles a jq program for repeated use.
//
// A failed compilation returns [ErrInvalidProgram]. Compilation is never
// retried: a broken program stays broken until its text is corrected.
func Compile(program string) (*Program, error) {
	s, err := newState()
	if err != nil {
		return nil, err
	}
	if err := s.compile(program); err != nil {
		s.close()
		return nil, err
	}
	return &Program{state: s, parser: newParser()}, nil
}

// Run evaluates the compiled program against one JSON input.
//
// The result is the serialized form of every value the program emitted,
// newline-joined in emission order with no trailing newline. Empty or
// whitespace-only input yields "" without error. Runs are independent: a
// failed run does not poison the Program, and no partial output ever
// accompanies an error.
func (p *Program) Run(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		// The engine mis-reports empty input as a parse failure, so it
		// never sees the buffer at all.
		return "", nil
	}
	v, err := p.parser.parse(input)
	if err != nil {
		return "", err
	}
	// execute takes ownership of v.
	return p.state.execute(v)
}

// Close releases the engine state backing the Program. Idempotent; using
// the Program after Close is invalid.
func (p *Program) Close() error {
	p.parser.close()
	p.state.close()
	return nil
}
