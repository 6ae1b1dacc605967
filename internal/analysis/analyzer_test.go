package analysis

import (
	"strings"
	"testing"

	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

func decode(t *testing.T, data []byte) tree.Tree {
	t.Helper()
	objs, err := der.DecodeAll(data)
	if err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return tree.FromObjects(objs)
}

// algorithmIdentifier is SEQUENCE { OID 1.2.840.113549.1.1.11, NULL },
// followed by a second top-level INTEGER 1.
var algorithmIdentifier = []byte{
	0x30, 0x0D,
	0x06, 0x09, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0B,
	0x05, 0x00,
	0x02, 0x01, 0x01,
}

func TestAnalyze(t *testing.T) {
	r := Analyze(decode(t, algorithmIdentifier))

	if r.TopLevel != 2 {
		t.Errorf("expected 2 top-level objects, got %d", r.TopLevel)
	}
	if r.Nodes != 4 || r.Constructed != 1 || r.Primitive != 3 {
		t.Errorf("unexpected counts: nodes=%d constructed=%d primitive=%d", r.Nodes, r.Constructed, r.Primitive)
	}
	if r.MaxDepth != 2 {
		t.Errorf("expected max depth 2, got %d", r.MaxDepth)
	}
	if r.PayloadBytes != 10 {
		t.Errorf("expected 10 payload bytes, got %d", r.PayloadBytes)
	}
	if r.EncodedBytes != len(algorithmIdentifier) {
		t.Errorf("expected %d encoded bytes, got %d", len(algorithmIdentifier), r.EncodedBytes)
	}
	if len(r.OIDs) != 1 || r.OIDs[0].OID != "1.2.840.113549.1.1.11" || r.OIDs[0].Name != "sha256WithRSAEncryption" {
		t.Errorf("unexpected OIDs: %+v", r.OIDs)
	}
	if r.OIDs[0].Path != "/0/0" {
		t.Errorf("expected OID at /0/0, got %s", r.OIDs[0].Path)
	}
	if len(r.Findings) != 0 {
		t.Errorf("expected no findings, got %+v", r.Findings)
	}
}

func TestAnalyzeHistogramOrder(t *testing.T) {
	// Three INTEGERs, one NULL, one SEQUENCE.
	data := []byte{0x30, 0x08, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02, 0x05, 0x00, 0x02, 0x01, 0x03}
	r := Analyze(decode(t, data))

	want := []TagCount{{"INTEGER", 3}, {"NULL", 1}, {"SEQUENCE", 1}}
	if len(r.Tags) != len(want) {
		t.Fatalf("expected %d buckets, got %+v", len(want), r.Tags)
	}
	for i := range want {
		if r.Tags[i] != want[i] {
			t.Errorf("bucket %d: expected %+v, got %+v", i, want[i], r.Tags[i])
		}
	}
}

func TestAnalyzeRepeatedOID(t *testing.T) {
	data := []byte{0x30, 0x0A, 0x06, 0x03, 0x55, 0x04, 0x03, 0x06, 0x03, 0x55, 0x04, 0x03}
	r := Analyze(decode(t, data))
	if len(r.OIDs) != 1 || r.OIDs[0].Count != 2 {
		t.Errorf("expected one OID seen twice, got %+v", r.OIDs)
	}
}

func TestFindings(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"boolean", []byte{0x01, 0x01, 0x01}, "BOOLEAN true encoded as 0x01"},
		{"integer padding", []byte{0x02, 0x02, 0x00, 0x01}, "not minimally encoded"},
		{"negative padding", []byte{0x02, 0x02, 0xFF, 0x80}, "not minimally encoded"},
		{"null content", []byte{0x05, 0x01, 0x00}, "NULL has 1 content bytes"},
		{"bit string pad", []byte{0x03, 0x02, 0x03, 0x01}, "non-zero padding"},
		{"bit string unused", []byte{0x03, 0x01, 0x08}, "declares 8 unused bits"},
		{"oid", []byte{0x06, 0x01, 0x80}, "malformed"},
	}
	for _, tt := range tests {
		r := Analyze(decode(t, tt.data))
		if len(r.Findings) != 1 {
			t.Errorf("%s: expected one finding, got %+v", tt.name, r.Findings)
			continue
		}
		if !strings.Contains(r.Findings[0].Message, tt.want) {
			t.Errorf("%s: expected %q in %q", tt.name, tt.want, r.Findings[0].Message)
		}
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	r := Analyze(nil)
	if r.Nodes != 0 || r.MaxDepth != 0 || len(r.Tags) != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(Analyze(decode(t, algorithmIdentifier)))

	for _, want := range []string{
		"# derlens Structure Report",
		"| Nodes | 4 |",
		"| Max Depth | 2 |",
		"| 1.2.840.113549.1.1.11 | sha256WithRSAEncryption | /0/0 | 1 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Findings") {
		t.Error("report should not have a findings section")
	}
}
