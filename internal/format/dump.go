package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Mr-Dark-debug/derlens/internal/tree"
	"github.com/Mr-Dark-debug/derlens/pkg/hexutil"
)

// DumpOptions controls Dump.
type DumpOptions struct {
	// Raw prints primitive contents as hex instead of interpreting them.
	Raw bool
	// Color enables ANSI styling regardless of what w is.
	Color bool
	// Width truncates lines to this many columns. Zero disables.
	Width int
	// Preview bounds string and hex values. Zero disables.
	Preview int
}

type dumpStyles struct {
	marker lipgloss.Style
	tag    lipgloss.Style
	length lipgloss.Style
	value  lipgloss.Style
}

func newDumpStyles(w io.Writer, color bool) dumpStyles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return dumpStyles{
		marker: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		tag:    r.NewStyle().Foreground(lipgloss.Color("#89B4FA")).Bold(true),
		length: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		value:  r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	}
}

// Dump writes every node of t, fully expanded, one per line.
func Dump(w io.Writer, t tree.Tree, opts DumpOptions) error {
	st := newDumpStyles(w, opts.Color)
	for _, row := range t.Flatten(nil) {
		if _, err := fmt.Fprintln(w, dumpLine(row, opts, st)); err != nil {
			return fmt.Errorf("writing dump: %w", err)
		}
	}
	return nil
}

func dumpLine(row tree.Row, opts DumpOptions, st dumpStyles) string {
	n := row.Node
	indent := strings.Repeat("  ", row.Depth)
	marker := Marker(row)
	name := TagName(n.Tag)
	length := fmt.Sprintf(" (len=%d)", n.Length)

	var value string
	switch {
	case n.Constructed():
		value = fmt.Sprintf(" {%d}", len(n.Children))
	case opts.Raw:
		value = " : " + hexutil.Preview(n.Bytes, opts.Preview)
	default:
		if v := Value(n, opts.Preview); v != "" {
			value = " : " + v
		}
	}

	if opts.Width > 0 {
		used := len([]rune(indent+marker+" "+name+length))
		if room := opts.Width - used; room <= 0 {
			value = ""
		} else {
			value = hexutil.TruncateString(value, room)
		}
	}

	return indent + st.marker.Render(marker) + " " + st.tag.Render(name) +
		st.length.Render(length) + st.value.Render(value)
}
