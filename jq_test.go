package jq_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jq-go/jq"
)

func TestRunIdentity(t *testing.T) {
	out, err := jq.Run(".", "{}")
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestRunExtractName(t *testing.T) {
	out, err := jq.Run(".name", `{"name": "test"}`)
	require.NoError(t, err)
	assert.Equal(t, `"test"`, out)
}

func TestRunUnpackArray(t *testing.T) {
	out, err := jq.Run(".[]", "[1,2,3]")
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3", out)
}

func TestRunEmptyInput(t *testing.T) {
	for _, input := range []string{"", " ", "\n", " \t\n  "} {
		for _, program := range []string{".", ".[]", ".name"} {
			out, err := jq.Run(program, input)
			require.NoError(t, err, "program %q input %q", program, input)
			assert.Equal(t, "", out, "program %q input %q", program, input)
		}
	}
}

func TestRunMultipleTopLevelValues(t *testing.T) {
	// Only the first top-level value in a buffer is evaluated.
	out, err := jq.Run(".", "1 2 3")
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestCompileError(t *testing.T) {
	_, err := jq.Run(". aa12312me  dsaafsdfsd", `{"name": "test"}`)
	require.ErrorIs(t, err, jq.ErrInvalidProgram)

	_, err = jq.Compile("][")
	require.ErrorIs(t, err, jq.ErrInvalidProgram)
}

func TestParseError(t *testing.T) {
	inputs := []string{
		"{",
		"}",
		`{1233 invalid json ahoy : est"}`,
		`{
			moreLike: "an object literal but also bad"
			loveToDangleComma: true,
		}`,
	}
	for _, input := range inputs {
		_, err := jq.Run(".", input)
		require.ErrorIs(t, err, jq.ErrSystem, "input %q", input)
	}
}

func TestReuseCompiledProgram(t *testing.T) {
	prog, err := jq.Compile(`if . == 0 then "zero" elif . == 1 then "one" else "many" end`)
	require.NoError(t, err)
	defer prog.Close()

	out, err := prog.Run("2")
	require.NoError(t, err)
	assert.Equal(t, `"many"`, out)

	out, err = prog.Run("1")
	require.NoError(t, err)
	assert.Equal(t, `"one"`, out)

	out, err = prog.Run("0")
	require.NoError(t, err)
	assert.Equal(t, `"zero"`, out)
}

func TestParseErrorOnReusedProgram(t *testing.T) {
	prog, err := jq.Compile(".")
	require.NoError(t, err)
	defer prog.Close()

	// A truncated object leaves an open value behind in a naive
	// incremental parser. The next run must not be able to complete it:
	// "}" alone is malformed, not the tail end of the previous input.
	_, err = prog.Run("{")
	require.ErrorIs(t, err, jq.ErrSystem)

	_, err = prog.Run("}")
	require.ErrorIs(t, err, jq.ErrSystem)

	// And valid input after a failed run must succeed.
	out, err := prog.Run("3")
	require.NoError(t, err)
	assert.Equal(t, "3", out)
}

func TestDanglingPartialAfterFirstValue(t *testing.T) {
	prog, err := jq.Compile(".")
	require.NoError(t, err)
	defer prog.Close()

	// Trailing content past the first value is ignored, including a
	// partial value that would otherwise sit waiting for more data.
	out, err := prog.Run("1 {")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	out, err = prog.Run("3")
	require.NoError(t, err)
	assert.Equal(t, "3", out)
}

func TestProgramReuseAfterMultiValueBuffer(t *testing.T) {
	prog, err := jq.Compile(".")
	require.NoError(t, err)
	defer prog.Close()

	out, err := prog.Run("1 2")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	// The parser must come back clean for the next buffer.
	out, err = prog.Run("3")
	require.NoError(t, err)
	assert.Equal(t, "3", out)
}

func TestStateIsNotGlobal(t *testing.T) {
	// The state handles returned by the engine must be completely
	// independent and share nothing across instances.
	input := `{"id": 123, "name": "foo"}`

	name, err := jq.Compile(".name")
	require.NoError(t, err)
	defer name.Close()

	id, err := jq.Compile(".id")
	require.NoError(t, err)
	defer id.Close()

	for i := 0; i < 50; i++ {
		out, err := name.Run(input)
		require.NoError(t, err)
		assert.Equal(t, `"foo"`, out)

		out, err = id.Run(input)
		require.NoError(t, err)
		assert.Equal(t, "123", out)
	}
}

func TestRunMatchesCompiledRun(t *testing.T) {
	cases := []struct {
		program string
		input   string
	}{
		{".", "{}"},
		{".[]", "[1,2,3]"},
		{".name", `{"name": "test"}`},
		{".", ""},
		{".", "{"},
		{".[] | .hello", "[1,2,3]"},
		{"not a program", "{}"},
	}
	for _, tc := range cases {
		oneOff, oneOffErr := jq.Run(tc.program, tc.input)

		prog, err := jq.Compile(tc.program)
		if err != nil {
			assert.Equal(t, err, oneOffErr, "program %q", tc.program)
			continue
		}
		compiled, compiledErr := prog.Run(tc.input)
		prog.Close()

		assert.Equal(t, oneOff, compiled, "program %q input %q", tc.program, tc.input)
		assert.Equal(t, oneOffErr, compiledErr, "program %q input %q", tc.program, tc.input)
	}
}

func TestInteriorNUL(t *testing.T) {
	_, err := jq.Compile(".\x00name")
	require.ErrorIs(t, err, jq.ErrStringConversion)

	_, err = jq.Run(".", "\"a\x00b\"")
	require.ErrorIs(t, err, jq.ErrStringConversion)
}

func TestCloseIdempotent(t *testing.T) {
	prog, err := jq.Compile(".")
	require.NoError(t, err)
	require.NoError(t, prog.Close())
	require.NoError(t, prog.Close())
}

func TestExtractValuesRoundTrip(t *testing.T) {
	movies := map[string]any{
		"movies": []map[string]any{
			{"title": "Coraline", "year": 2009},
			{"title": "ParaNorman", "year": 2012},
			{"title": "Boxtrolls", "year": 2014},
			{"title": "Kubo and the Two Strings", "year": 2016},
			{"title": "Missing Link", "year": 2019},
		},
	}
	data, err := json.Marshal(movies)
	require.NoError(t, err)

	out, err := jq.Run("[.movies[].year]", string(data))
	require.NoError(t, err)

	var years []int64
	require.NoError(t, json.Unmarshal([]byte(out), &years))
	assert.Equal(t, []int64{2009, 2012, 2014, 2016, 2019}, years)
}

// Bad field access through an iterator is a reliable way to provoke a double
// free in naive wrappers: the program and input are both valid, but
// evaluation fails partway through the output stream.

func TestMissingFieldAccess(t *testing.T) {
	_, err := jq.Run(".[] | .hello", "[1,2,3]")
	require.ErrorIs(t, err, jq.ErrSystem)
}

func TestMissingFieldAccessCompiled(t *testing.T) {
	prog, err := jq.Compile(".[] | .hello")
	require.NoError(t, err)
	defer prog.Close()

	for i := 0; i < 20; i++ {
		_, err := prog.Run("[1,2,3]")
		require.ErrorIs(t, err, jq.ErrSystem)
	}

	// A failed run must not poison the program for different input.
	out, err := prog.Run(`[{"hello": 1}]`)
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}
