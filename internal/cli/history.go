package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/Mr-Dark-debug/derlens/internal/history"
	"github.com/Mr-Dark-debug/derlens/internal/logging"
	"github.com/Mr-Dark-debug/derlens/pkg/hexutil"
	"github.com/Mr-Dark-debug/derlens/pkg/timeutil"
)

var errHistoryDisabled = errors.New("history is disabled")

func newHistoryCommand(g *globals) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear previously decoded inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHistory(g, func(store *history.DBService) error {
				out := cmd.OutOrStdout()
				if clearAll {
					if err := store.Clear(); err != nil {
						return err
					}
					logging.FromContext(cmd.Context()).Info("history cleared")
					return nil
				}

				logging.FromContext(cmd.Context()).Debug("listing history", logging.FieldLimit, limit)
				entries, err := store.Recent(limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, err = fmt.Fprintln(out, "No history.")
					return err
				}
				for _, e := range entries {
					_, err = fmt.Fprintf(out, "%4d  %-14s  %-6s  %6d bytes  %s\n",
						e.ID,
						timeutil.RelativeTime(e.CreatedAt),
						e.Source,
						e.ByteLen,
						hexutil.TruncateString(firstLine(e.Text), 40),
					)
					if err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to list")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all entries")

	cmd.AddCommand(newHistoryShowCommand(g))

	return cmd
}

func newHistoryShowCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print the stored text of one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			logging.FromContext(cmd.Context()).Debug("showing history entry", logging.FieldHistoryID, id)
			return withHistory(g, func(store *history.DBService) error {
				e, err := store.Get(id)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %d  %s  %s  %d objects\n%s\n",
					e.ID, timeutil.FormatTimestampFull(e.CreatedAt), e.Source, e.Objects, e.Text)
				return err
			})
		},
	}
}

func withHistory(g *globals, fn func(*history.DBService) error) (err error) {
	store, err := g.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errHistoryDisabled
	}
	defer func() { err = multierr.Append(err, store.Close()) }()
	return fn(store)
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
