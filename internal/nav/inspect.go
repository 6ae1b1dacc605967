package nav

import (
	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

// Breakdown is the byte-level view of one node.
type Breakdown struct {
	Path   tree.Path
	Offset int
	Tag    []byte
	Length []byte
	Value  []byte
}

// Size is the total encoded size of the node.
func (b Breakdown) Size() int {
	return len(b.Tag) + len(b.Length) + len(b.Value)
}

// Encoding returns tag, length and value bytes concatenated.
func (b Breakdown) Encoding() []byte {
	out := make([]byte, 0, b.Size())
	out = append(out, b.Tag...)
	out = append(out, b.Length...)
	return append(out, b.Value...)
}

// Inspect re-synthesizes the tag and length octets of the selected node and
// pairs them with its value bytes as decoded.
func (s *State) Inspect() (Breakdown, bool) {
	n := s.SelectedNode()
	if n == nil {
		return Breakdown{}, false
	}
	return Breakdown{
		Path:   s.SelectedPath(),
		Offset: n.Offset,
		Tag:    der.AppendTag(nil, n.Tag),
		Length: der.AppendLength(nil, n.Length),
		Value:  n.Content(),
	}, true
}
