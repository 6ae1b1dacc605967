package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/derlens/internal/input"
	"github.com/Mr-Dark-debug/derlens/pkg/hexutil"
)

// errNoInput is returned by commands that need a file or piped stdin.
var errNoInput = errors.New("no input: pass a file or pipe data on stdin")

// loadedInput is a file or stdin payload ready for the editor or decoder.
type loadedInput struct {
	Raw    []byte
	Text   string
	Source input.Source
	Piped  bool
}

// Bytes returns the DER bytes of the input.
func (in *loadedInput) Bytes() ([]byte, error) {
	return input.Normalize(in.Raw)
}

// readInput reads args[0], or stdin when it is not a terminal. It returns
// nil when there is neither.
func readInput(cmd *cobra.Command, args []string) (*loadedInput, error) {
	if len(args) > 0 && args[0] != "-" {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		return newLoadedInput(raw, input.SourceFile, false), nil
	}

	stdin := cmd.InOrStdin()
	if f, ok := stdin.(*os.File); ok && isTerminal(f) && len(args) == 0 {
		return nil, nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return newLoadedInput(raw, input.SourceStdin, true), nil
}

// requireInput is readInput for commands that cannot run without data.
func requireInput(cmd *cobra.Command, args []string) (*loadedInput, error) {
	in, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if in == nil {
		return nil, errNoInput
	}
	return in, nil
}

func newLoadedInput(raw []byte, source input.Source, piped bool) *loadedInput {
	text := string(raw)
	if !input.IsText(raw) {
		text = strings.Join(hexutil.Wrap(raw, 16), "\n")
	}
	return &loadedInput{Raw: raw, Text: text, Source: source, Piped: piped}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
