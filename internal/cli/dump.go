package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/format"
	"github.com/Mr-Dark-debug/derlens/internal/logging"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type dumpFlags struct {
	raw   bool
	color string
	width int
}

func newDumpCommand(g *globals) *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the decoded tree without the interactive viewer",
		Long: `Decode a file or stdin and print every node, one per line.

Input may be raw DER, hex, base64 or PEM.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args, g, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print primitive contents as hex")
	cmd.Flags().StringVar(&flags.color, "color", colorAuto, "colorize output: auto, always, never")
	cmd.Flags().IntVar(&flags.width, "width", 0, "truncate lines to this width (default: terminal width)")

	return cmd
}

func runDump(cmd *cobra.Command, args []string, g *globals, flags *dumpFlags) error {
	t, err := decodeInput(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tty := false
	if f, ok := out.(*os.File); ok {
		tty = isTerminal(f)
	}

	color := false
	switch flags.color {
	case colorAuto:
		color = tty
	case colorAlways:
		color = true
	case colorNever:
	default:
		return fmt.Errorf("invalid --color %q: want auto, always or never", flags.color)
	}

	width := flags.width
	if width == 0 && tty {
		if w, _, err := term.GetSize(int(out.(*os.File).Fd())); err == nil {
			width = w
		}
	}

	return format.Dump(out, t, format.DumpOptions{
		Raw:     flags.raw,
		Color:   color,
		Width:   width,
		Preview: g.cfg.StringPreview,
	})
}

// decodeInput reads, normalizes and decodes the command input.
func decodeInput(cmd *cobra.Command, args []string) (tree.Tree, error) {
	in, err := requireInput(cmd, args)
	if err != nil {
		return nil, err
	}
	data, err := in.Bytes()
	if err != nil {
		return nil, err
	}
	objects, err := der.DecodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s input: %w", in.Source, err)
	}
	logging.FromContext(cmd.Context()).Debug("decoded input",
		logging.FieldSource, in.Source,
		logging.FieldBytes, len(data),
		logging.FieldObjects, len(objects),
	)
	return tree.FromObjects(objects), nil
}
