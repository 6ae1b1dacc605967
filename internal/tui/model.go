package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Mr-Dark-debug/derlens/internal/analysis"
	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/history"
	"github.com/Mr-Dark-debug/derlens/internal/input"
	"github.com/Mr-Dark-debug/derlens/internal/logging"
	"github.com/Mr-Dark-debug/derlens/internal/nav"
	"github.com/Mr-Dark-debug/derlens/pkg/hexutil"
)

// ────────────────────────────────────────────────────────────
// Options
// ────────────────────────────────────────────────────────────

// Options configures a Model.
type Options struct {
	// Store records submitted inputs. Nil disables history.
	Store history.Store
	// HistoryLimit is how many entries are kept after each submit.
	HistoryLimit int
	// Logger receives decode and history events. Nil uses the default.
	Logger *log.Logger
	// HexWidth is the number of bytes per row in the inspect pane.
	HexWidth int
	// Preview bounds values in tree labels. Zero disables.
	Preview int
	// Initial is pre-loaded into the editor and decoded on start.
	Initial string
	// Source tags the initial input in history.
	Source input.Source
	// Copy writes to the system clipboard. Nil uses atotto/clipboard.
	Copy func(string) error
}

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the derlens TUI.
// Navigation lives in nav.State; rendering is delegated to
// component functions in separate files.
type Model struct {
	state  *nav.State
	report *analysis.Report // of the installed tree
	store  history.Store
	logger *log.Logger
	keys   keyMap
	help   help.Model
	opts   Options

	// Components
	editor  textarea.Model
	inspect viewport.Model

	// History recall
	entries    []*history.Entry
	historyIdx int // -1 when showing the draft
	draft      string
	source     input.Source

	// UI state
	width    int
	height   int
	showHelp bool

	// Status
	statusMsg string
	statusErr bool
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.HexWidth <= 0 {
		opts.HexWidth = 16
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Source == "" {
		opts.Source = input.SourcePaste
	}

	m := Model{
		state:      nav.New(),
		store:      opts.Store,
		logger:     opts.Logger,
		keys:       defaultKeyMap(),
		help:       help.New(),
		opts:       opts,
		editor:     newEditor(),
		inspect:    viewport.New(0, 0),
		historyIdx: -1,
		source:     opts.Source,
		statusMsg:  "Paste DER as hex, base64 or PEM, then press ctrl+r",
	}
	if opts.Initial != "" {
		m.editor.SetValue(opts.Initial)
	}
	return m
}

// Mode returns the current interaction mode.
func (m Model) Mode() nav.Mode { return m.state.Mode() }

// State exposes the navigation state.
func (m Model) State() *nav.State { return m.state }

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type submitMsg struct{}
type historyLoadedMsg []*history.Entry
type copiedMsg struct{ n int }
type errMsg struct {
	op  string
	err error
}

func (e errMsg) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.loadHistory()}
	if m.opts.Initial != "" {
		cmds = append(cmds, func() tea.Msg { return submitMsg{} })
	}
	return tea.Batch(cmds...)
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitMsg:
		return m.submit()

	case historyLoadedMsg:
		m.entries = []*history.Entry(msg)
		m.historyIdx = -1
		return m, nil

	case copiedMsg:
		m.setStatus(fmt.Sprintf("Copied %d bytes as hex", msg.n))
		return m, nil

	case errMsg:
		m.logger.Error(msg.op, logging.FieldError, msg.err)
		m.setError(msg.Error())
		return m, nil
	}

	if m.state.Mode() == nav.ModeEditing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.state.Mode() {
	case nav.ModeEditing:
		return m.handleEditingKey(msg)
	case nav.ModeInspecting:
		return m.handleInspectingKey(msg)
	default:
		return m.handleViewingKey(msg)
	}
}

func (m Model) handleViewingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Down):
		m.state.DescendOrAdvance()

	case key.Matches(msg, m.keys.Up):
		m.state.AscendOrRetreat()

	case key.Matches(msg, m.keys.Toggle):
		m.state.ToggleCollapse()

	case key.Matches(msg, m.keys.ExpandAll):
		m.state.ExpandAll()

	case key.Matches(msg, m.keys.CollapseAll):
		m.state.CollapseAll()

	case key.Matches(msg, m.keys.Inspect):
		m.setMode(nav.ModeInspecting)
		m.refreshInspect()

	case key.Matches(msg, m.keys.Edit):
		return m, m.setMode(nav.ModeEditing)
	}

	m.state.UpdateScroll(m.treeRows())
	return m, nil
}

func (m Model) handleInspectingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()

	case key.Matches(msg, m.keys.Close):
		m.setMode(nav.ModeViewing)
		m.state.UpdateScroll(m.treeRows())
		return m, nil

	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.inspect, cmd = m.inspect.Update(msg)
	return m, cmd
}

// setMode switches mode and moves editor focus with it. A refused switch
// leaves a status message.
func (m *Model) setMode(mode nav.Mode) tea.Cmd {
	if !m.state.SetMode(mode) {
		m.setError("Nothing decoded yet")
		return nil
	}
	m.logger.Debug("mode changed", logging.FieldMode, mode)
	m.resize()
	if mode == nav.ModeEditing {
		return m.editor.Focus()
	}
	m.editor.Blur()
	return nil
}

func (m *Model) copySelected() tea.Cmd {
	b, ok := m.state.Inspect()
	if !ok {
		return nil
	}
	enc := b.Encoding()
	m.logger.Debug("copying node", logging.FieldNode, b.Path.String(), logging.FieldBytes, len(enc))
	write := m.opts.Copy
	return func() tea.Msg {
		if err := write(hexutil.Compact(enc)); err != nil {
			return errMsg{op: "copying to clipboard", err: err}
		}
		return copiedMsg{n: len(enc)}
	}
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.statusMsg = s
	m.statusErr = true
}

// errorOffset extracts the byte offset from a decode error, if any.
func errorOffset(err error) (int, bool) {
	var de *der.DecodeError
	if errors.As(err, &de) {
		return de.Offset, true
	}
	return 0, false
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	var body string
	if m.showHelp {
		body = renderHelp(&m, m.width, m.bodyHeight())
	} else {
		body = m.renderMainLayout()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderMainLayout assembles the panes for the current mode.
func (m Model) renderMainLayout() string {
	bodyHeight := m.bodyHeight()

	if m.state.Mode() == nav.ModeInspecting {
		if m.compact() {
			return renderInspectPanel(&m, m.width, bodyHeight)
		}
		leftWidth := m.width * 45 / 100
		tree := renderTreePanel(&m, leftWidth, bodyHeight)
		detail := renderInspectPanel(&m, m.width-leftWidth, bodyHeight)
		return lipgloss.JoinHorizontal(lipgloss.Top, tree, detail)
	}

	editorHeight := m.editorPaneHeight()
	editor := renderEditorPanel(&m, m.width, editorHeight)
	tree := renderTreePanel(&m, m.width, bodyHeight-editorHeight)
	return lipgloss.JoinVertical(lipgloss.Left, editor, tree)
}
