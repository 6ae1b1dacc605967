package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/derlens/internal/der"
)

// certLike is SEQUENCE { SEQUENCE { [0] { INTEGER 2 }, INTEGER 7 }, NULL, OCTET STRING "ab" }.
var certLike = []byte{
	0x30, 0x10,
	0x30, 0x08,
	0xA0, 0x03, 0x02, 0x01, 0x02,
	0x02, 0x01, 0x07,
	0x05, 0x00,
	0x04, 0x02, 'a', 'b',
	0x30, 0x00,
}

func decode(t *testing.T, data []byte) Tree {
	t.Helper()
	objects, err := der.DecodeAll(data)
	require.NoError(t, err)
	return FromObjects(objects)
}

func TestFromObjects_CopiesBytes(t *testing.T) {
	buf := append([]byte{}, certLike...)
	objects, err := der.DecodeAll(buf)
	require.NoError(t, err)

	owned := FromObjects(objects)

	// Overwrite the source buffer; the owned tree must not change.
	for i := range buf {
		buf[i] = 0xEE
	}

	octets := owned.Resolve(Path{0, 2})
	require.NotNil(t, octets)
	assert.Equal(t, []byte("ab"), octets.Bytes)

	integer := owned.Resolve(Path{0, 0, 1})
	require.NotNil(t, integer)
	assert.Equal(t, []byte{0x07}, integer.Bytes)
}

func TestFromObjects_PreservesFields(t *testing.T) {
	objects, err := der.DecodeAll(certLike)
	require.NoError(t, err)
	owned := FromObjects(objects)

	var check func(obj *der.Object, n *Node)
	check = func(obj *der.Object, n *Node) {
		assert.Equal(t, obj.Tag, n.Tag)
		assert.Equal(t, obj.Length, n.Length)
		assert.Equal(t, obj.Offset, n.Offset)
		assert.Equal(t, obj.HeaderLen, n.HeaderLen)
		require.Len(t, n.Children, len(obj.Children))
		for i := range obj.Children {
			check(&obj.Children[i], n.Children[i])
		}
	}
	require.Len(t, owned, len(objects))
	for i := range objects {
		check(&objects[i], owned[i])
	}
}

// TestEncode_ReconstructsContent verifies that for every constructed node the
// concatenated child encodings equal its declared-length content.
func TestEncode_ReconstructsContent(t *testing.T) {
	owned := decode(t, certLike)

	owned.Walk(func(p Path, n *Node) bool {
		start := n.Offset + n.HeaderLen
		original := certLike[start : start+n.Length]
		assert.True(t, bytes.Equal(original, n.Content()), "content mismatch at %s", p)

		full := certLike[n.Offset : start+n.Length]
		assert.Equal(t, full, n.Encode(), "encoding mismatch at %s", p)
		return true
	})
}

// TestContent_NonMinimalChildHeader verifies that a constructed node keeps its
// value bytes as decoded while Encode rebuilds minimal headers.
func TestContent_NonMinimalChildHeader(t *testing.T) {
	data := []byte{0x30, 0x04, 0x02, 0x81, 0x01, 0x05}
	owned := decode(t, data)
	require.Len(t, owned, 1)

	seq := owned[0]
	assert.Equal(t, 4, seq.Length)
	assert.Equal(t, data[2:], seq.Content())
	assert.Equal(t, []byte{0x30, 0x03, 0x02, 0x01, 0x05}, seq.Encode())

	data[3] = 0xEE
	assert.Equal(t, byte(0x81), seq.Content()[1])
}

func TestNode_Header(t *testing.T) {
	owned := decode(t, []byte{0x1F, 0x85, 0x01, 0x01, 0xFF})
	require.Len(t, owned, 1)
	assert.Equal(t, []byte{0x1F, 0x85, 0x01, 0x01}, owned[0].Header())
	assert.Equal(t, uint64(641), owned[0].Tag.Number)
}
