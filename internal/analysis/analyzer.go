// Package analysis computes deterministic structural statistics over a
// decoded tree: node counts, depth, sizes, tag usage, object identifiers,
// and encodings that are well-formed TLV but not canonical DER.
package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/format"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

// ============================================================
// Tag Histogram
// ============================================================

// TagCount is one histogram bucket.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

func histogram(counts map[string]int) []TagCount {
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// ============================================================
// Object Identifiers
// ============================================================

// OIDEntry is an OBJECT IDENTIFIER found in the tree.
type OIDEntry struct {
	Path  string `json:"path"`
	OID   string `json:"oid"`
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
}

// ============================================================
// Canonical Encoding Checks
// ============================================================

// Finding is a node whose content is not canonical DER.
type Finding struct {
	Path    string `json:"path"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func check(p tree.Path, n *tree.Node) (string, bool) {
	if n.Tag.Class != der.ClassUniversal || n.Constructed() {
		return "", false
	}
	b := n.Bytes
	switch n.Tag.Number {
	case der.TagBoolean:
		if len(b) != 1 {
			return fmt.Sprintf("BOOLEAN has %d content bytes, want 1", len(b)), true
		}
		if b[0] != 0x00 && b[0] != 0xFF {
			return fmt.Sprintf("BOOLEAN true encoded as 0x%02X, want 0xFF", b[0]), true
		}
	case der.TagInteger, der.TagEnumerated:
		if len(b) == 0 {
			return "INTEGER has no content bytes", true
		}
		if len(b) > 1 && ((b[0] == 0x00 && b[1]&0x80 == 0) || (b[0] == 0xFF && b[1]&0x80 != 0)) {
			return "INTEGER is not minimally encoded", true
		}
	case der.TagNull:
		if len(b) != 0 {
			return fmt.Sprintf("NULL has %d content bytes", len(b)), true
		}
	case der.TagBitString:
		if len(b) == 0 {
			return "BIT STRING is missing its unused-bits byte", true
		}
		if b[0] > 7 {
			return fmt.Sprintf("BIT STRING declares %d unused bits", b[0]), true
		}
		if len(b) > 1 && b[len(b)-1]&(1<<b[0]-1) != 0 {
			return "BIT STRING has non-zero padding bits", true
		}
	case der.TagOID:
		if _, err := format.DecodeOID(b); err != nil {
			return "OBJECT IDENTIFIER is malformed", true
		}
	}
	return "", false
}

// ============================================================
// Full Analysis Report
// ============================================================

// Report is the output of `derlens stats`.
type Report struct {
	GeneratedAt  string     `json:"generated_at"`
	TopLevel     int        `json:"top_level"`
	Nodes        int        `json:"nodes"`
	Constructed  int        `json:"constructed"`
	Primitive    int        `json:"primitive"`
	MaxDepth     int        `json:"max_depth"` // nesting levels; 1 for a lone primitive
	PayloadBytes int        `json:"payload_bytes"`
	EncodedBytes int        `json:"encoded_bytes"`
	Tags         []TagCount `json:"tags"`
	OIDs         []OIDEntry `json:"oids"`
	Findings     []Finding  `json:"findings"`
}

// Analyze walks t once and collects every statistic.
func Analyze(t tree.Tree) *Report {
	r := &Report{
		GeneratedAt: time.Now().Format(time.RFC3339),
		TopLevel:    len(t),
	}

	tags := make(map[string]int)
	oidIndex := make(map[string]int)

	t.Walk(func(p tree.Path, n *tree.Node) bool {
		r.Nodes++
		if d := len(p); d > r.MaxDepth {
			r.MaxDepth = d
		}
		tags[format.TagName(n.Tag)]++

		if n.Constructed() {
			r.Constructed++
			return true
		}
		r.Primitive++
		r.PayloadBytes += len(n.Bytes)

		if n.Tag.Is(der.TagOID) {
			if oid, err := format.DecodeOID(n.Bytes); err == nil {
				if i, ok := oidIndex[oid]; ok {
					r.OIDs[i].Count++
				} else {
					name, _ := format.OIDName(oid)
					oidIndex[oid] = len(r.OIDs)
					r.OIDs = append(r.OIDs, OIDEntry{Path: p.String(), OID: oid, Name: name, Count: 1})
				}
			}
		}
		if msg, bad := check(p, n); bad {
			r.Findings = append(r.Findings, Finding{Path: p.String(), Tag: format.TagName(n.Tag), Message: msg})
		}
		return true
	})

	for _, n := range t {
		r.EncodedBytes += len(n.Encode())
	}
	r.Tags = histogram(tags)
	return r
}

// FormatReport generates a human-readable markdown report.
func FormatReport(report *Report) string {
	var b strings.Builder

	b.WriteString("# derlens Structure Report\n\n")
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Top-level Objects | %d |\n", report.TopLevel))
	b.WriteString(fmt.Sprintf("| Nodes | %d |\n", report.Nodes))
	b.WriteString(fmt.Sprintf("| Constructed | %d |\n", report.Constructed))
	b.WriteString(fmt.Sprintf("| Primitive | %d |\n", report.Primitive))
	b.WriteString(fmt.Sprintf("| Max Depth | %d |\n", report.MaxDepth))
	b.WriteString(fmt.Sprintf("| Payload Bytes | %d |\n", report.PayloadBytes))
	b.WriteString(fmt.Sprintf("| Encoded Bytes | %d |\n\n", report.EncodedBytes))

	if len(report.Tags) > 0 {
		b.WriteString("## Tags\n\n")
		b.WriteString("| Tag | Count |\n")
		b.WriteString("|-----|-------|\n")
		for _, tc := range report.Tags {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", tc.Tag, tc.Count))
		}
		b.WriteString("\n")
	}

	if len(report.OIDs) > 0 {
		b.WriteString("## Object Identifiers\n\n")
		b.WriteString("| OID | Name | First Seen | Count |\n")
		b.WriteString("|-----|------|------------|-------|\n")
		for _, o := range report.OIDs {
			name := o.Name
			if name == "" {
				name = "-"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n", o.OID, name, o.Path, o.Count))
		}
		b.WriteString("\n")
	}

	if len(report.Findings) > 0 {
		b.WriteString("## Findings\n\n")
		for _, f := range report.Findings {
			b.WriteString(fmt.Sprintf("- `%s` %s: %s\n", f.Path, f.Tag, f.Message))
		}
	}

	return b.String()
}
