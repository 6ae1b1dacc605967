package tree

import (
	"strconv"
	"strings"
)

// Path addresses a node: the first index selects a top-level node, each
// following index selects a child of the previous node.
type Path []int

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path{}, p...)
}

// Child returns a new path one level below p.
func (p Path) Child(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, i)
}

// Parent returns the path one level above p, or nil at the top level.
func (p Path) Parent() Path {
	if len(p) <= 1 {
		return nil
	}
	return p[:len(p)-1].Clone()
}

// Last returns the index within the parent's children, or -1 for an empty path.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Sibling returns a copy of p with the last index moved by delta.
func (p Path) Sibling(delta int) Path {
	out := p.Clone()
	if len(out) > 0 {
		out[len(out)-1] += delta
	}
	return out
}

// Depth is the zero-based nesting level of the addressed node.
func (p Path) Depth() int {
	return len(p) - 1
}

// Equal reports whether p and o address the same node.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Key is a stable string form of p, usable as a map key.
func (p Path) Key() string {
	var b strings.Builder
	for i, idx := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

func (p Path) String() string {
	return "/" + strings.ReplaceAll(p.Key(), ".", "/")
}

// Resolve walks t along p. It returns nil when any index is out of range or
// when p indexes into a primitive node.
func (t Tree) Resolve(p Path) *Node {
	if len(p) == 0 || p[0] < 0 || p[0] >= len(t) {
		return nil
	}
	n := t[p[0]]
	for _, idx := range p[1:] {
		if !n.Constructed() || idx < 0 || idx >= len(n.Children) {
			return nil
		}
		n = n.Children[idx]
	}
	return n
}
