package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/derlens/internal/format"
	"github.com/Mr-Dark-debug/derlens/internal/nav"
)

// renderHeader produces the top bar:
//
//	DERLENS │ VIEWING │ 2 objects · 14 nodes · depth 4 │ /0/1 SEQUENCE
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("DERLENS")
	sep := headerSepStyle.Render(" │ ")

	parts := []string{
		brand,
		sep,
		headerModeStyle.Render(strings.ToUpper(m.state.Mode().String())),
	}

	if r := m.report; r != nil {
		meta := fmt.Sprintf("%d objects · %d nodes · depth %d", r.TopLevel, r.Nodes, r.MaxDepth)
		parts = append(parts, sep, headerMetaStyle.Render(meta))
		if n := len(r.Findings); n > 0 {
			parts = append(parts, sep, headerWarnStyle.Render(fmt.Sprintf("%d non-canonical", n)))
		}
	}

	if n := m.state.SelectedNode(); n != nil {
		parts = append(parts, sep)
		parts = append(parts, headerMetaStyle.Render(
			fmt.Sprintf("%s %s", m.state.SelectedPath(), format.TagName(n.Tag))))
	}

	content := strings.Join(parts, "")

	return headerBarStyle.Width(m.width).MaxHeight(1).Render(content)
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left string
	if m.statusMsg != "" {
		style := statusStyle
		if m.statusErr {
			style = statusErrorStyle
		}
		left = style.Render(m.statusMsg)
	}

	var bindings []key.Binding
	switch m.state.Mode() {
	case nav.ModeEditing:
		bindings = m.keys.editingHelp()
	case nav.ModeInspecting:
		bindings = m.keys.inspectingHelp()
	default:
		bindings = m.keys.viewingHelp()
	}
	right := renderHints(bindings)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		MaxHeight(1).
		Render(bar)
}

func renderHints(bindings []key.Binding) string {
	var parts []string
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts,
			hintKeyStyle.Render(h.Key)+" "+hintDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
