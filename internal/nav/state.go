// Package nav implements the cursor over a decoded tree: a selected path, a
// set of collapsed nodes and a scroll offset, plus the editing/viewing/
// inspecting mode the interface is in.
//
// The selected path always resolves against the installed tree. Operations
// that would leave it dangling leave it unchanged instead.
package nav

import (
	"errors"

	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
)

// ErrNoObjects is returned by Submit when the data holds no TLV at all.
var ErrNoObjects = errors.New("no objects decoded")

// Mode is the interaction state of the viewer.
type Mode int

const (
	// ModeEditing accumulates raw input awaiting decode.
	ModeEditing Mode = iota
	// ModeViewing moves a cursor over the decoded tree.
	ModeViewing
	// ModeInspecting shows the tag/length/value breakdown of the selection.
	ModeInspecting
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeViewing:
		return "viewing"
	case ModeInspecting:
		return "inspecting"
	default:
		return "unknown"
	}
}

// State owns the installed tree and everything that addresses into it.
type State struct {
	tree      tree.Tree
	selected  tree.Path
	collapsed map[string]struct{}
	scroll    int
	mode      Mode
}

// New returns an empty state in editing mode.
func New() *State {
	return &State{collapsed: make(map[string]struct{})}
}

// Tree returns the installed tree.
func (s *State) Tree() tree.Tree { return s.tree }

// Mode returns the current mode.
func (s *State) Mode() Mode { return s.mode }

// Scroll returns the index of the first visible row.
func (s *State) Scroll() int { return s.scroll }

// SetMode switches mode. Viewing and inspecting need a selected node; the
// call is refused when there is none.
func (s *State) SetMode(m Mode) bool {
	if m != ModeEditing && s.SelectedNode() == nil {
		return false
	}
	s.mode = m
	return true
}

// Submit decodes data and, only if that yields at least one object, installs
// the result and switches to viewing. On error the state is left exactly as
// it was.
func (s *State) Submit(data []byte) error {
	objects, err := der.DecodeAll(data)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return ErrNoObjects
	}
	s.Install(tree.FromObjects(objects))
	s.mode = ModeViewing
	return nil
}

// Install replaces the tree, selects the first top-level node and clears the
// collapse set and scroll offset.
func (s *State) Install(t tree.Tree) {
	s.tree = t
	s.collapsed = make(map[string]struct{})
	s.scroll = 0
	s.selected = nil
	if len(t) > 0 {
		s.selected = tree.Path{0}
	}
	if s.selected == nil && s.mode != ModeEditing {
		s.mode = ModeEditing
	}
}

// Resolve returns the node at p in the installed tree, or nil.
func (s *State) Resolve(p tree.Path) *tree.Node {
	return s.tree.Resolve(p)
}

// SelectedPath returns a copy of the selected path.
func (s *State) SelectedPath() tree.Path {
	return s.selected.Clone()
}

// SelectedNode returns the selected node, or nil when the tree is empty.
func (s *State) SelectedNode() *tree.Node {
	return s.tree.Resolve(s.selected)
}

// Select moves the cursor to p if p resolves.
func (s *State) Select(p tree.Path) bool {
	if s.tree.Resolve(p) == nil {
		return false
	}
	s.selected = p.Clone()
	return true
}

// IsCollapsed reports whether p is in the collapse set.
func (s *State) IsCollapsed(p tree.Path) bool {
	_, ok := s.collapsed[p.Key()]
	return ok
}

func (s *State) expandable(p tree.Path) (*tree.Node, bool) {
	n := s.tree.Resolve(p)
	if n == nil || !n.Constructed() || len(n.Children) == 0 || s.IsCollapsed(p) {
		return n, false
	}
	return n, true
}

// DescendOrAdvance moves to the first child of an expanded constructed node,
// otherwise to the next sibling of the nearest level that has one.
func (s *State) DescendOrAdvance() {
	if s.SelectedNode() == nil {
		return
	}
	if _, ok := s.expandable(s.selected); ok {
		s.selected = s.selected.Child(0)
		return
	}
	for p := s.selected; len(p) > 0; p = p.Parent() {
		next := p.Sibling(1)
		if s.tree.Resolve(next) != nil {
			s.selected = next
			return
		}
	}
}

// AscendOrRetreat moves to the deepest visible descendant of the previous
// sibling, or to the parent when already on the first child.
func (s *State) AscendOrRetreat() {
	if s.SelectedNode() == nil {
		return
	}
	if s.selected.Last() == 0 {
		if len(s.selected) > 1 {
			s.selected = s.selected.Parent()
		}
		return
	}

	p := s.selected.Sibling(-1)
	for {
		n, ok := s.expandable(p)
		if !ok {
			break
		}
		p = p.Child(len(n.Children) - 1)
	}
	s.selected = p
}

// ToggleCollapse flips the collapse state of the selected constructed node.
// Primitive nodes are left alone.
func (s *State) ToggleCollapse() {
	n := s.SelectedNode()
	if n == nil || !n.Constructed() {
		return
	}
	key := s.selected.Key()
	if _, ok := s.collapsed[key]; ok {
		delete(s.collapsed, key)
		return
	}
	s.collapsed[key] = struct{}{}
}

// ExpandAll clears the collapse set.
func (s *State) ExpandAll() {
	s.collapsed = make(map[string]struct{})
}

// CollapseAll collapses every non-empty constructed node and moves the
// selection to its top-level ancestor so it stays visible.
func (s *State) CollapseAll() {
	s.tree.Walk(func(p tree.Path, n *tree.Node) bool {
		if n.Constructed() && len(n.Children) > 0 {
			s.collapsed[p.Key()] = struct{}{}
		}
		return true
	})
	if len(s.selected) > 1 {
		s.selected = s.selected[:1].Clone()
	}
}

// Rows returns the collapse-aware flattened view of the tree.
func (s *State) Rows() []tree.Row {
	return s.tree.Flatten(s.IsCollapsed)
}

// SelectedRow returns the position of the selection in Rows, or -1.
func (s *State) SelectedRow() int {
	return indexOf(s.Rows(), s.selected)
}

func indexOf(rows []tree.Row, p tree.Path) int {
	for i, r := range rows {
		if r.Path.Equal(p) {
			return i
		}
	}
	return -1
}

// UpdateScroll adjusts the scroll offset by the least amount that keeps the
// selected row inside a window of height rows.
func (s *State) UpdateScroll(height int) {
	if height < 1 {
		height = 1
	}
	rows := s.Rows()
	selected := indexOf(rows, s.selected)
	if selected < 0 {
		s.scroll = 0
		return
	}

	if selected < s.scroll {
		s.scroll = selected
	} else if selected >= s.scroll+height {
		s.scroll = selected - height + 1
	}

	maxScroll := len(rows) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
}
