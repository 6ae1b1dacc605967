package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/derlens/internal/format"
	"github.com/Mr-Dark-debug/derlens/pkg/hexutil"
)

// inspectHeaderLines is the number of summary lines above the hex dump.
const inspectHeaderLines = 7

// refreshInspect loads the selected node's value bytes into the viewport.
func (m *Model) refreshInspect() {
	b, ok := m.state.Inspect()
	if !ok {
		m.inspect.SetContent("")
		return
	}
	base := b.Offset + len(b.Tag) + len(b.Length)
	rows := hexutil.Dump(b.Value, m.dumpWidth(), base)
	if len(rows) == 0 {
		rows = []string{"(empty)"}
	}
	for i, r := range rows {
		rows[i] = byteValueStyle.Render(r)
	}
	m.inspect.SetContent(strings.Join(rows, "\n"))
	m.inspect.GotoTop()
}

// dumpWidth is the configured bytes per row, narrowed until a row of
// offset, hex and ASCII fits the pane.
func (m *Model) dumpWidth() int {
	w := m.opts.HexWidth
	if avail := m.inspect.Width; avail > 0 {
		w = min(w, (avail-13)/4)
	}
	return maxInt(w, 4)
}

// renderInspect renders the tag/length/value breakdown of the selection.
func renderInspect(m *Model, width int) string {
	title := panelTitleStyle.Render("Inspect")

	b, ok := m.state.Inspect()
	n := m.state.SelectedNode()
	if !ok || n == nil {
		return title + "\n" + emptyStateStyle.Render("No node selected.")
	}

	form := "primitive"
	if n.Tag.Constructed {
		form = "constructed"
	}

	room := width - detailLabelWidth
	tagHex := hexutil.Encode(b.Tag)
	lenHex := hexutil.Encode(b.Length)

	lines := []string{
		title,
		detailRow("Path", truncate(b.Path.String(), room)),
		detailRow("Offset", truncate(fmt.Sprintf("%d (0x%X)", b.Offset, b.Offset), room)),
		detailLabelStyle.Render("Tag") + byteTagStyle.Render(tagHex) +
			detailValueStyle.Render(truncate(
				fmt.Sprintf("  %s · %s %s #%d", format.TagName(n.Tag), n.Tag.Class, form, n.Tag.Number),
				room-len(tagHex))),
		detailLabelStyle.Render("Length") + byteLengthStyle.Render(lenHex) +
			detailValueStyle.Render(truncate(fmt.Sprintf("  %d bytes", n.Length), room-len(lenHex))),
		detailRow("Size", truncate(fmt.Sprintf("%d bytes encoded", b.Size()), room)),
		detailSectionStyle.Render(strings.Repeat("─", maxInt(width, 1))),
	}

	return strings.Join(lines, "\n") + "\n" + m.inspect.View()
}

func detailRow(label, value string) string {
	return detailLabelStyle.Render(label) + detailValueStyle.Render(value)
}

// renderInspectPanel wraps the breakdown in a styled panel.
func renderInspectPanel(m *Model, width, height int) string {
	content := renderInspect(m, width-2)
	return panelActiveStyle.Width(width).Height(height - 1).MaxHeight(height).Render(content)
}
