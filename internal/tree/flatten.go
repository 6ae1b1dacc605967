package tree

// Row is one line of the collapse-aware flattened view.
type Row struct {
	Path      Path
	Depth     int
	Node      *Node
	Collapsed bool
}

// Flatten lists the visible nodes of t in pre-order, skipping the children of
// every node for which collapsed returns true. A nil collapsed expands all.
func (t Tree) Flatten(collapsed func(Path) bool) []Row {
	var rows []Row
	var walk func(n *Node, p Path)
	walk = func(n *Node, p Path) {
		folded := n.Constructed() && collapsed != nil && collapsed(p)
		rows = append(rows, Row{Path: p, Depth: p.Depth(), Node: n, Collapsed: folded})
		if !n.Constructed() || folded {
			return
		}
		for i, child := range n.Children {
			walk(child, p.Child(i))
		}
	}
	for i, n := range t {
		walk(n, Path{i})
	}
	return rows
}

// Walk visits every node of t in pre-order. Returning false from fn skips the
// node's children.
func (t Tree) Walk(fn func(p Path, n *Node) bool) {
	var walk func(n *Node, p Path)
	walk = func(n *Node, p Path) {
		if !fn(p, n) {
			return
		}
		for i, child := range n.Children {
			walk(child, p.Child(i))
		}
	}
	for i, n := range t {
		walk(n, Path{i})
	}
}

// Count returns the total number of nodes in t.
func (t Tree) Count() int {
	count := 0
	t.Walk(func(Path, *Node) bool {
		count++
		return true
	})
	return count
}
