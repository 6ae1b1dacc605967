// Package cli provides the Cobra command structure for derlens.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/Mr-Dark-debug/derlens/internal/config"
	"github.com/Mr-Dark-debug/derlens/internal/history"
	"github.com/Mr-Dark-debug/derlens/internal/logging"
	"github.com/Mr-Dark-debug/derlens/internal/tui"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globals are the persistent flags plus the config they resolve to.
type globals struct {
	configPath string
	debug      bool
	noHistory  bool

	cfg *config.Config
}

func (g *globals) logLevel() string {
	if g.debug {
		return "debug"
	}
	return g.cfg.LogLevel
}

// openHistory opens the history store, or returns nil when history is
// disabled.
func (g *globals) openHistory() (*history.DBService, error) {
	if g.noHistory || g.cfg.HistoryPath == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(g.cfg.HistoryPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return history.NewDBService(g.cfg.HistoryPath)
}

// NewRootCommand creates the root derlens command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "derlens [file]",
		Short: "Interactive DER/ASN.1 viewer",
		Long: `derlens decodes DER-encoded ASN.1 and lets you browse it as a tree.

Paste hex, base64 or PEM into the input pane and press ctrl+r. A file
argument or piped stdin is loaded and decoded on start. Binary files are
read as raw DER.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg

			logger := logging.NewWithWriter(cmd.ErrOrStderr(), g.logLevel())
			logging.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			logger.Debug("config loaded", logging.FieldPath, config.Discover(g.configPath))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, args, g)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&g.noHistory, "no-history", false, "do not read or record input history")

	rootCmd.AddCommand(newDumpCommand(g))
	rootCmd.AddCommand(newStatsCommand(g))
	rootCmd.AddCommand(newHistoryCommand(g))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// runTUI starts the interactive viewer. Logs go to the configured log file
// while the terminal is in alternate-screen mode.
func runTUI(cmd *cobra.Command, args []string, g *globals) (err error) {
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	logger := logging.FromContext(cmd.Context())
	if g.cfg.LogFile != "" {
		f, ferr := logging.OpenFile(g.cfg.LogFile)
		if ferr != nil {
			return ferr
		}
		defer func() { err = multierr.Append(err, f.Close()) }()
		logger = logging.NewWithWriter(f, g.logLevel())
		logging.SetDefault(logger)
	}

	opts := tui.Options{
		Logger:       logger,
		HexWidth:     g.cfg.HexWidth,
		Preview:      g.cfg.StringPreview,
		HistoryLimit: g.cfg.HistoryLimit,
	}
	if in != nil {
		opts.Initial = in.Text
		opts.Source = in.Source
		logger.Debug("loaded input", logging.FieldSource, in.Source, logging.FieldBytes, len(in.Raw))
	}

	store, herr := g.openHistory()
	if herr != nil {
		logger.Warn("history unavailable", logging.FieldError, herr)
	}
	if store != nil {
		defer func() { err = multierr.Append(err, store.Close()) }()
		opts.Store = store
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if in != nil && in.Piped {
		// stdin is the data; keys come from the controlling terminal.
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	p := tea.NewProgram(tui.NewModel(opts), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
