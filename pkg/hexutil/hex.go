// Package hexutil renders byte slices for display in the TUI and the dump
// command.
package hexutil

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Encode returns upper-case hex with a space between bytes: "30 03 02".
func Encode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hexDigits[c>>4], hexDigits[c&0x0F])
	}
	return string(out)
}

// Compact returns upper-case hex without separators.
func Compact(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, hexDigits[c>>4], hexDigits[c&0x0F])
	}
	return string(out)
}

// Wrap splits the spaced hex of b into lines of width bytes each.
func Wrap(b []byte, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for start := 0; start < len(b); start += width {
		end := min(start+width, len(b))
		lines = append(lines, Encode(b[start:end]))
	}
	return lines
}

// Dump renders b as offset-prefixed rows with an ASCII gutter, the way
// hexdump -C does. base is added to every printed offset.
func Dump(b []byte, width, base int) []string {
	if width < 1 {
		width = 1
	}
	var rows []string
	pad := width*3 - 1
	for start := 0; start < len(b); start += width {
		end := min(start+width, len(b))
		chunk := b[start:end]
		rows = append(rows, fmt.Sprintf("%08X  %-*s  |%s|", base+start, pad, Encode(chunk), printable(chunk)))
	}
	return rows
}

func printable(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c < 0x7F {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Preview returns the spaced hex of at most limit bytes, with an ellipsis
// and the total length when b is longer.
func Preview(b []byte, limit int) string {
	if limit <= 0 || len(b) <= limit {
		return Encode(b)
	}
	return fmt.Sprintf("%s … (%d bytes)", Encode(b[:limit]), len(b))
}

// TruncateString truncates a string to maxLen runes, adding "..."
// if truncation occurred. Used for display in the TUI.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
