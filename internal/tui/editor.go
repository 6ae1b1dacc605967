package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mr-Dark-debug/derlens/internal/analysis"
	"github.com/Mr-Dark-debug/derlens/internal/history"
	"github.com/Mr-Dark-debug/derlens/internal/input"
	"github.com/Mr-Dark-debug/derlens/internal/logging"
	"github.com/Mr-Dark-debug/derlens/internal/nav"
)

func newEditor() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "30 03 02 01 05  ·  MAMCAQU=  ·  -----BEGIN CERTIFICATE-----"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Focus()
	return ta
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Decode):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.editor.Reset()
		m.historyIdx = -1
		m.source = input.SourcePaste
		return m, nil

	case key.Matches(msg, m.keys.ToTree):
		cmd := m.setMode(nav.ModeViewing)
		return m, cmd

	case key.Matches(msg, m.keys.HistPrev):
		m.recall(+1)
		return m, nil

	case key.Matches(msg, m.keys.HistNext):
		m.recall(-1)
		return m, nil
	}

	if m.historyIdx >= 0 {
		// Editing a recalled entry makes it a new draft.
		m.historyIdx = -1
		m.source = input.SourcePaste
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// submit decodes the editor text. On failure the tree, selection and
// collapse state stay as they were and the error goes to the status line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.editor.Value()

	data, err := input.Decode(text)
	if err != nil {
		m.logger.Warn("input rejected", logging.FieldError, err, logging.FieldSource, m.source)
		m.setError(fmt.Sprintf("Input: %v", err))
		return m, nil
	}

	if err := m.state.Submit(data); err != nil {
		offset, _ := errorOffset(err)
		m.logger.Warn("decode failed",
			logging.FieldError, err,
			logging.FieldOffset, offset,
			logging.FieldBytes, len(data),
		)
		m.setError(fmt.Sprintf("Decode: %v", err))
		return m, nil
	}

	objects := len(m.state.Tree())
	m.report = analysis.Analyze(m.state.Tree())
	m.logger.Info("decoded",
		logging.FieldObjects, objects,
		logging.FieldBytes, len(data),
		logging.FieldSource, m.source,
	)
	m.setStatus(fmt.Sprintf("Decoded %d objects, %d bytes", objects, len(data)))
	m.editor.Blur()
	m.resize()

	entry := history.NewEntry(string(m.source), text, data, objects)
	m.source = input.SourcePaste
	return m, m.record(entry)
}

// ────────────────────────────────────────────────────────────
// History
// ────────────────────────────────────────────────────────────

func (m Model) loadHistory() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		entries, err := store.Recent(m.opts.HistoryLimit)
		if err != nil {
			return errMsg{op: "loading history", err: err}
		}
		return historyLoadedMsg(entries)
	}
}

func (m Model) record(e *history.Entry) tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, limit, logger := m.store, m.opts.HistoryLimit, m.logger
	return func() tea.Msg {
		id, err := store.Record(e)
		if err != nil {
			return errMsg{op: "recording history", err: err}
		}
		logger.Debug("recorded input", logging.FieldHistoryID, id)
		if limit > 0 {
			if err := store.Prune(limit); err != nil {
				return errMsg{op: "pruning history", err: err}
			}
		}
		entries, err := store.Recent(limit)
		if err != nil {
			return errMsg{op: "loading history", err: err}
		}
		return historyLoadedMsg(entries)
	}
}

// recall moves through history: +1 is older, -1 is newer. Moving newer
// than the newest entry restores the draft.
func (m *Model) recall(delta int) {
	if len(m.entries) == 0 {
		m.setError("No history")
		return
	}
	next := m.historyIdx + delta
	if next >= len(m.entries) {
		return
	}
	if m.historyIdx == -1 && next >= 0 {
		m.draft = m.editor.Value()
	}
	if next < 0 {
		if m.historyIdx >= 0 {
			m.historyIdx = -1
			m.editor.SetValue(m.draft)
			m.source = input.SourcePaste
			m.setStatus("Draft")
		}
		return
	}

	m.historyIdx = next
	e := m.entries[next]
	m.editor.SetValue(e.Text)
	m.source = input.Source(e.Source)
	m.setStatus(fmt.Sprintf("History %d/%d · %d bytes", next+1, len(m.entries), e.ByteLen))
}

// renderEditorPanel wraps the textarea in a styled panel.
func renderEditorPanel(m *Model, width, height int) string {
	active := m.state.Mode() == nav.ModeEditing

	titleStyle := panelTitleDimStyle
	style := panelStyle
	if active {
		titleStyle = panelTitleStyle
		style = panelActiveStyle
	}

	title := titleStyle.Render("Input")
	if m.historyIdx >= 0 {
		title += treeDimStyle.Render(fmt.Sprintf("  history %d/%d", m.historyIdx+1, len(m.entries)))
	}

	content := title + "\n" + m.editor.View()
	return style.Width(width).Height(height - 1).MaxHeight(height).Render(content)
}
