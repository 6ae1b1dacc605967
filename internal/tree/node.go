// Package tree holds the owned form of a decoded DER object tree.
//
// Nodes never point at their parent or siblings; a position in the tree is a
// Path of child indices resolved from the top level on demand. A Tree is
// immutable once built and is replaced wholesale on re-decode.
package tree

import "github.com/Mr-Dark-debug/derlens/internal/der"

// Node is a self-contained copy of a der.Object.
type Node struct {
	Tag       der.Tag
	Length    int
	Offset    int
	HeaderLen int

	Bytes    []byte
	Children []*Node
}

// Constructed reports whether the node holds child nodes rather than bytes.
func (n *Node) Constructed() bool {
	return n.Tag.Constructed
}

// Tree is the ordered list of top-level nodes.
type Tree []*Node

// FromObject copies obj and all of its descendants, depth-first, so the result
// no longer references the decoder's input buffer.
func FromObject(obj *der.Object) *Node {
	n := &Node{
		Tag:       obj.Tag,
		Length:    obj.Length,
		Offset:    obj.Offset,
		HeaderLen: obj.HeaderLen,
		Bytes:     append([]byte{}, obj.Bytes...),
	}
	if !obj.Tag.Constructed {
		return n
	}
	n.Children = make([]*Node, len(obj.Children))
	for i := range obj.Children {
		n.Children[i] = FromObject(&obj.Children[i])
	}
	return n
}

// FromObjects copies a decoded top-level sequence.
func FromObjects(objects []der.Object) Tree {
	t := make(Tree, len(objects))
	for i := range objects {
		t[i] = FromObject(&objects[i])
	}
	return t
}

// Header re-synthesizes the identifier and length octets of n.
func (n *Node) Header() []byte {
	return der.Header(n.Tag, n.Length)
}

// Content returns the value bytes of n exactly as they were decoded.
func (n *Node) Content() []byte {
	return n.Bytes
}

// reencodedContent rebuilds the value of a constructed node from its
// children with minimal headers.
func (n *Node) reencodedContent() []byte {
	if !n.Constructed() {
		return n.Bytes
	}
	var out []byte
	for _, child := range n.Children {
		out = child.AppendEncoding(out)
	}
	return out
}

// AppendEncoding appends a re-synthesized TLV encoding of n to dst. It equals
// the source bytes when every header in the subtree was minimally encoded.
func (n *Node) AppendEncoding(dst []byte) []byte {
	content := n.reencodedContent()
	dst = der.AppendTag(dst, n.Tag)
	dst = der.AppendLength(dst, len(content))
	return append(dst, content...)
}

// Encode returns the re-synthesized TLV encoding of n.
func (n *Node) Encode() []byte {
	return n.AppendEncoding(nil)
}
