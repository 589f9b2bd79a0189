// jq-run evaluates a jq filter against a JSON input.
//
// Input comes from the second argument, or from stdin when stdin is not a
// terminal:
//
//	jq-run '.name' '{"name": "fred"}'
//	cat data.json | jq-run '.name'
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jq-go/jq"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "jq-run PROGRAM [INPUT]",
		Short: "Run a jq filter against a JSON input",
		Long: "jq-run compiles PROGRAM with libjq and evaluates it against INPUT.\n" +
			"When INPUT is omitted, JSON is read from stdin.",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			out, err := jq.Run(args[0], input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no input: pass INPUT or pipe JSON on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
