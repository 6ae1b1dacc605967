package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/format"
	"github.com/Mr-Dark-debug/derlens/internal/nav"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

// renderTree renders the visible window of the collapse-aware row list.
func renderTree(m *Model, width, rows int) string {
	active := m.state.Mode() != nav.ModeEditing

	titleStyle := panelTitleDimStyle
	if active {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Tree")

	all := m.state.Rows()
	if len(all) == 0 {
		return title + "\n" + emptyStateStyle.Render("Nothing decoded yet.")
	}

	selected := m.state.SelectedRow()
	title += treeDimStyle.Render(fmt.Sprintf("  %d/%d", selected+1, len(all)))

	lines := []string{title}
	start := m.state.Scroll()
	end := min(start+rows, len(all))
	for i := start; i < end; i++ {
		label := truncate(format.Label(all[i], m.opts.Preview), width)
		if i == selected {
			lines = append(lines, nodeSelectedStyle.Width(width).Render(label))
			continue
		}
		lines = append(lines, nodeStyle(all[i]).Render(label))
	}

	return strings.Join(lines, "\n")
}

// nodeStyle colors a row by tag class.
func nodeStyle(r tree.Row) lipgloss.Style {
	switch r.Node.Tag.Class {
	case der.ClassContextSpecific:
		return nodeContextStyle
	case der.ClassApplication:
		return nodeApplicationStyle
	case der.ClassPrivate:
		return nodePrivateStyle
	}
	if r.Node.Constructed() {
		return nodeUniversalStyle
	}
	return nodePrimitiveStyle
}

// renderTreePanel wraps the tree in a styled panel.
func renderTreePanel(m *Model, width, height int) string {
	content := renderTree(m, width-2, height-paneChrome)

	style := panelStyle
	if m.state.Mode() == nav.ModeViewing {
		style = panelActiveStyle
	}

	return style.Width(width).Height(height - 1).MaxHeight(height).Render(content)
}
