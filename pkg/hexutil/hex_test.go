package hexutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "0A", Encode([]byte{0x0A}))
	assert.Equal(t, "30 03 FF", Encode([]byte{0x30, 0x03, 0xFF}))
	assert.Equal(t, "3003FF", Compact([]byte{0x30, 0x03, 0xFF}))
}

func TestWrap(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	assert.Equal(t, []string{"01 02", "03 04", "05"}, Wrap(b, 2))
	assert.Equal(t, []string{"01 02 03 04 05"}, Wrap(b, 16))
	assert.Nil(t, Wrap(nil, 4))
	assert.Len(t, Wrap(b, 0), 5)
}

func TestDump(t *testing.T) {
	rows := Dump([]byte("abc\x00de"), 4, 0x10)
	assert.Equal(t, []string{
		"00000010  61 62 63 00  |abc.|",
		"00000014  64 65        |de|",
	}, rows)
}

func TestPreview(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	assert.Equal(t, "01 02 03 04", Preview(b, 4))
	assert.Equal(t, "01 02 … (4 bytes)", Preview(b, 2))
	assert.Equal(t, "01 02 03 04", Preview(b, 0))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "hello", TruncateString("hello", 5))
	assert.Equal(t, "he...", TruncateString("hello world", 5))
	assert.Equal(t, "he", TruncateString("hello", 2))
	assert.Equal(t, "é…", TruncateString("é…", 2))
}
