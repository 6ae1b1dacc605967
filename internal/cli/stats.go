package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mr-Dark-debug/derlens/internal/analysis"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func newStatsCommand(_ *globals) *cobra.Command {
	var outFormat string

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Report structure statistics and non-canonical encodings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := decodeInput(cmd, args)
			if err != nil {
				return err
			}
			report := analysis.Analyze(t)

			out := cmd.OutOrStdout()
			switch outFormat {
			case formatMarkdown:
				_, err = fmt.Fprint(out, analysis.FormatReport(report))
				return err
			case formatJSON:
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			default:
				return fmt.Errorf("invalid --format %q: want markdown or json", outFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outFormat, "format", "f", formatMarkdown, "output format: markdown, json")

	return cmd
}
