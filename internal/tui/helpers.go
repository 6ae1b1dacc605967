package tui

import "github.com/Mr-Dark-debug/derlens/internal/nav"

// ────────────────────────────────────────────────────────────
// Layout arithmetic
// ────────────────────────────────────────────────────────────

// paneChrome is the border line plus the title line of every pane.
const paneChrome = 2

// compactWidth is the width below which inspecting hides the tree.
const compactWidth = 80

func (m Model) bodyHeight() int {
	return maxInt(m.height-2, paneChrome+1) // header + footer
}

func (m Model) editorPaneHeight() int {
	return clamp(m.bodyHeight()/3, 3, 12) + paneChrome
}

// treeRows is the number of tree lines visible in the current mode.
func (m Model) treeRows() int {
	h := m.bodyHeight() - paneChrome
	if m.state.Mode() != nav.ModeInspecting {
		h -= m.editorPaneHeight()
	}
	return maxInt(h, 1)
}

func (m Model) compact() bool {
	return m.width < compactWidth
}

// inspectWidth is the content width of the inspect pane.
func (m Model) inspectWidth() int {
	if m.compact() {
		return maxInt(m.width-2, 1)
	}
	return maxInt(m.width-m.width*45/100-2, 1)
}

// resize propagates the window size to the components.
func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	m.editor.SetWidth(maxInt(m.width-2, 1))
	m.editor.SetHeight(m.editorPaneHeight() - paneChrome)
	m.inspect.Width = m.inspectWidth()
	m.inspect.Height = maxInt(m.bodyHeight()-paneChrome-inspectHeaderLines, 1)
	m.state.UpdateScroll(m.treeRows())
	if m.state.Mode() == nav.ModeInspecting {
		m.refreshInspect()
	}
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen and appends "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// maxInt returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
