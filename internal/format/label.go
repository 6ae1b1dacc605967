package format

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

const (
	MarkerExpanded  = "▼"
	MarkerCollapsed = "▶"
	MarkerLeaf      = "•"
)

// Marker returns the expand indicator for a row.
func Marker(r tree.Row) string {
	switch {
	case !r.Node.Constructed():
		return MarkerLeaf
	case r.Collapsed:
		return MarkerCollapsed
	default:
		return MarkerExpanded
	}
}

// Summary is the label text after the marker: tag name, length and either
// the interpreted value or the child count.
func Summary(n *tree.Node, preview int) string {
	var b strings.Builder
	b.WriteString(TagName(n.Tag))
	fmt.Fprintf(&b, " (len=%d)", n.Length)
	if n.Constructed() {
		switch len(n.Children) {
		case 1:
			b.WriteString(" {1 child}")
		default:
			fmt.Fprintf(&b, " {%d children}", len(n.Children))
		}
		return b.String()
	}
	if v := Value(n, preview); v != "" {
		b.WriteString(" : ")
		b.WriteString(v)
	}
	return b.String()
}

// Label is the full tree line for r: two spaces of indent per level, the
// marker, then the summary.
func Label(r tree.Row, preview int) string {
	return strings.Repeat("  ", r.Depth) + Marker(r) + " " + Summary(r.Node, preview)
}
