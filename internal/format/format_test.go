package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

func decode(t *testing.T, data []byte) tree.Tree {
	t.Helper()
	objs, err := der.DecodeAll(data)
	require.NoError(t, err)
	return tree.FromObjects(objs)
}

func primitive(number uint64, content ...byte) *tree.Node {
	return &tree.Node{
		Tag:    der.Tag{Class: der.ClassUniversal, Number: number},
		Length: len(content),
		Bytes:  content,
	}
}

func TestTagName(t *testing.T) {
	tests := []struct {
		tag  der.Tag
		want string
	}{
		{der.Tag{Class: der.ClassUniversal, Number: der.TagSequence, Constructed: true}, "SEQUENCE"},
		{der.Tag{Class: der.ClassUniversal, Number: der.TagBMPString}, "BMPString"},
		{der.Tag{Class: der.ClassUniversal, Number: 29}, "UNIVERSAL 29"},
		{der.Tag{Class: der.ClassContextSpecific, Number: 3, Constructed: true}, "[3]"},
		{der.Tag{Class: der.ClassApplication, Number: 1}, "[APPLICATION 1]"},
		{der.Tag{Class: der.ClassPrivate, Number: 200}, "[PRIVATE 200]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TagName(tt.tag))
	}
}

func TestDecodeOID(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x01, 0x0B}, "1.2.840.113549.1.1.11"},
		{[]byte{0x55, 0x04, 0x03}, "2.5.4.3"},
		{[]byte{0x06}, "0.6"},
		{[]byte{0x88, 0x37, 0x01}, "2.999.1"},
	}
	for _, tt := range tests {
		got, err := DecodeOID(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range [][]byte{nil, {0x2A, 0x86}, {0x2A, 0x80, 0x01}} {
		_, err := DecodeOID(bad)
		assert.Error(t, err, "% X", bad)
	}

	rel, err := DecodeRelativeOID([]byte{0x81, 0x00, 0x05})
	require.NoError(t, err)
	assert.Equal(t, "128.5", rel)
}

func TestInteger(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0x00}, "0"},
		{[]byte{0x7F}, "127"},
		{[]byte{0x00, 0x80}, "128"},
		{[]byte{0x80}, "-128"},
		{[]byte{0xFF}, "-1"},
		{[]byte{0xFF, 0x7F}, "-129"},
		{[]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, "18446744073709551616"},
	}
	for _, tt := range tests {
		got, ok := Integer(tt.in)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "% X", tt.in)
	}
	_, ok := Integer(nil)
	assert.False(t, ok)
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		node *tree.Node
		want string
	}{
		{"bool true", primitive(der.TagBoolean, 0xFF), "true"},
		{"bool false", primitive(der.TagBoolean, 0x00), "false"},
		{"bool malformed", primitive(der.TagBoolean, 0x01, 0x02), "01 02"},
		{"integer", primitive(der.TagInteger, 0x01, 0x00), "256"},
		{"enumerated", primitive(der.TagEnumerated, 0x02), "2"},
		{"bit string", primitive(der.TagBitString, 0x04, 0xA0), "(4 bits, 4 unused) A0"},
		{"bit string empty", primitive(der.TagBitString, 0x00), "(0 bits, 0 unused) "},
		{"bit string bad pad", primitive(der.TagBitString, 0x09, 0x00), "09 00"},
		{"octet string", primitive(der.TagOctetString, 0xDE, 0xAD), "(2 bytes) DE AD"},
		{"null", primitive(der.TagNull), ""},
		{"oid named", primitive(der.TagOID, 0x55, 0x04, 0x03), "2.5.4.3 (commonName)"},
		{"oid unnamed", primitive(der.TagOID, 0x2B, 0x06), "1.3.6"},
		{"printable", primitive(der.TagPrintableString, 'h', 'i'), `"hi"`},
		{"utf8", primitive(der.TagUTF8String, 0xC3, 0xA9), `"é"`},
		{"utf8 invalid", primitive(der.TagUTF8String, 0xFF), "FF"},
		{"bmp", primitive(der.TagBMPString, 0x00, 'o', 0x00, 'k'), `"ok"`},
		{"universal", primitive(der.TagUniversalString, 0, 0, 0, 'a'), `"a"`},
		{"utctime", primitive(der.TagUTCTime, []byte("250102030405Z")...), "2025-01-02T03:04:05Z"},
		{"generalized", primitive(der.TagGeneralizedTime, []byte("20250102030405.5Z")...), "2025-01-02T03:04:05.5Z"},
		{"bad time", primitive(der.TagUTCTime, []byte("nope")...), `"nope"`},
		{"unknown universal", primitive(29, 0x01), "01"},
		{
			"context primitive",
			&tree.Node{Tag: der.Tag{Class: der.ClassContextSpecific, Number: 0}, Length: 2, Bytes: []byte{'a', 'b'}},
			"61 62",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.node, 0))
		})
	}
}

func TestValue_Preview(t *testing.T) {
	long := primitive(der.TagIA5String, []byte("abcdefghij")...)
	assert.Equal(t, `"abcd..."`, Value(long, 7))

	oct := primitive(der.TagOctetString, 1, 2, 3, 4)
	assert.Equal(t, "(4 bytes) 01 02 … (4 bytes)", Value(oct, 2))
}

func TestLabel(t *testing.T) {
	tr := decode(t, []byte{0x30, 0x07, 0x02, 0x01, 0x05, 0x30, 0x02, 0x05, 0x00})

	rows := tr.Flatten(nil)
	require.Len(t, rows, 4)
	assert.Equal(t, "▼ SEQUENCE (len=7) {2 children}", Label(rows[0], 0))
	assert.Equal(t, "  • INTEGER (len=1) : 5", Label(rows[1], 0))
	assert.Equal(t, "  ▼ SEQUENCE (len=2) {1 child}", Label(rows[2], 0))
	assert.Equal(t, "    • NULL (len=0)", Label(rows[3], 0))

	collapsed := tr.Flatten(func(p tree.Path) bool { return len(p) == 1 })
	require.Len(t, collapsed, 1)
	assert.Equal(t, "▶ SEQUENCE (len=7) {2 children}", Label(collapsed[0], 0))
}

func TestDump(t *testing.T) {
	tr := decode(t, []byte{0x30, 0x07, 0x02, 0x01, 0x05, 0x04, 0x02, 0xAB, 0xCD})

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, tr, DumpOptions{}))
	assert.Equal(t, strings.Join([]string{
		"▼ SEQUENCE (len=7) {2}",
		"  • INTEGER (len=1) : 5",
		"  • OCTET STRING (len=2) : (2 bytes) AB CD",
		"",
	}, "\n"), buf.String())

	buf.Reset()
	require.NoError(t, Dump(&buf, tr, DumpOptions{Raw: true}))
	assert.Contains(t, buf.String(), "INTEGER (len=1) : 05\n")
	assert.Contains(t, buf.String(), "OCTET STRING (len=2) : AB CD\n")

	buf.Reset()
	require.NoError(t, Dump(&buf, tr, DumpOptions{Width: 20}))
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 26, line)
	}

	buf.Reset()
	require.NoError(t, Dump(&buf, tr, DumpOptions{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}
