package inspect

import (
	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// placeholderText is the single informational row shown when no Java
// application windows are present. The empty case is not an error.
const placeholderText = "No Java application windows found"

// TreeNode is one row of the displayed tree: a lazily materialized mirror
// of a remote accessible object. Child lists are cached until invalidated
// by ResetChildren or a full refresh.
type TreeNode struct {
	node        bridge.Node
	parent      *TreeNode
	children    []*TreeNode
	loaded      bool
	expanded    bool
	text        string
	placeholder bool
}

func newTreeNode(node bridge.Node, parent *TreeNode) *TreeNode {
	return &TreeNode{node: node, parent: parent, text: label(node)}
}

// Label returns the display text captured when the row was materialized.
func (n *TreeNode) Label() string { return n.text }

// Node returns the backing accessible handle; nil for the placeholder.
func (n *TreeNode) Node() bridge.Node { return n.node }

// Parent returns the parent row, nil at root level.
func (n *TreeNode) Parent() *TreeNode { return n.parent }

// IsPlaceholder reports whether the row is the "no windows" placeholder.
func (n *TreeNode) IsPlaceholder() bool { return n.placeholder }

// Expanded reports the row's expand state.
func (n *TreeNode) Expanded() bool { return n.expanded }

// Children returns the materialized child rows; nil until loaded.
func (n *TreeNode) Children() []*TreeNode { return n.children }

// SetExpanded expands or collapses the row, materializing children on
// first expansion.
func (n *TreeNode) SetExpanded(expanded bool) error {
	if expanded {
		if err := n.loadChildren(); err != nil {
			return err
		}
	}
	n.expanded = expanded
	return nil
}

// loadChildren materializes the child rows once.
func (n *TreeNode) loadChildren() error {
	if n.loaded || n.node == nil {
		return nil
	}
	children, err := n.node.Children()
	if err != nil {
		return err
	}
	n.children = make([]*TreeNode, 0, len(children))
	for _, c := range children {
		n.children = append(n.children, newTreeNode(c, n))
	}
	n.loaded = true
	return nil
}

// ResetChildren re-enumerates the row's children without disposing the
// row itself, collapsing around the swap and restoring the previous
// expand state afterwards.
func (n *TreeNode) ResetChildren() error {
	wasExpanded := n.expanded
	n.expanded = false
	for _, c := range n.children {
		c.dispose()
	}
	n.children = nil
	n.loaded = false
	err := n.loadChildren()
	n.expanded = wasExpanded
	return err
}

// dispose releases the subtree's handles depth-first, children before the
// node itself. Each handle is released exactly once because child lists
// are dropped as they are disposed.
func (n *TreeNode) dispose() {
	for _, c := range n.children {
		c.dispose()
	}
	n.children = nil
	n.loaded = false
	if n.node != nil {
		n.node.Dispose()
		n.node = nil
	}
}

// TreeModel mirrors the provider's accessible hierarchy. Owned by the
// UI-affine executor; no method is safe to call concurrently.
type TreeModel struct {
	provider bridge.Provider
	roots    []*TreeNode
}

func newTreeModel(provider bridge.Provider) *TreeModel {
	return &TreeModel{provider: provider}
}

// Roots returns the current root rows.
func (m *TreeModel) Roots() []*TreeNode { return m.roots }

// Empty reports whether the tree shows nothing or only the placeholder.
func (m *TreeModel) Empty() bool {
	return len(m.roots) == 0 || (len(m.roots) == 1 && m.roots[0].placeholder)
}

// Refresh disposes the entire previous tree, then re-enumerates top-level
// windows and installs fresh roots expanded one level. Zero windows
// installs the placeholder row.
func (m *TreeModel) Refresh() error {
	old := m.roots
	m.roots = nil
	for _, r := range old {
		r.dispose()
	}

	if m.provider == nil {
		m.installPlaceholder()
		return nil
	}
	windows, err := m.provider.Windows()
	if err != nil {
		m.installPlaceholder()
		return err
	}
	if len(windows) == 0 {
		m.installPlaceholder()
		return nil
	}

	var firstErr error
	for _, win := range windows {
		root := newTreeNode(win, nil)
		if err := root.SetExpanded(true); err != nil && firstErr == nil {
			firstErr = err
		}
		m.roots = append(m.roots, root)
	}
	return firstErr
}

func (m *TreeModel) installPlaceholder() {
	m.roots = []*TreeNode{{text: placeholderText, placeholder: true, loaded: true}}
}

// DisposeAll releases the whole tree.
func (m *TreeModel) DisposeAll() {
	for _, r := range m.roots {
		r.dispose()
	}
	m.roots = nil
}

// ResolvePath re-locates the row a NodePath describes in the current
// tree, materializing rows along the way. A segment that cannot be found
// in its parent's current children yields a PathResolutionError; the
// descent never guesses.
func (m *TreeModel) ResolvePath(p *NodePath) (*TreeNode, error) {
	if p.Len() == 0 {
		return nil, &PathResolutionError{Depth: 0, Label: "<empty path>"}
	}

	var current *TreeNode
	for _, r := range m.roots {
		if r.node != nil && r.node.Equal(p.At(0)) {
			current = r
			break
		}
	}
	if current == nil {
		return nil, &PathResolutionError{Depth: 0, Label: label(p.At(0))}
	}

	for i := 1; i < p.Len(); i++ {
		seg := p.At(i)
		if err := current.loadChildren(); err != nil {
			return nil, &PathResolutionError{Depth: i, Label: label(seg)}
		}
		next := findChild(current, seg)
		if next == nil {
			return nil, &PathResolutionError{Depth: i, Label: label(seg)}
		}
		current = next
	}
	return current, nil
}

// findChild locates seg among node's materialized children: by reported
// index-in-parent when the segment has one (stable for transient
// contexts), falling back to a linear equality scan (JVM and window rows
// are not index-addressable).
func findChild(node *TreeNode, seg bridge.Node) *TreeNode {
	if idx := seg.IndexInParent(); idx >= 0 && idx < len(node.children) {
		if cand := node.children[idx]; cand.node != nil && cand.node.Equal(seg) {
			return cand
		}
	}
	for _, c := range node.children {
		if c.node != nil && c.node.Equal(seg) {
			return c
		}
	}
	return nil
}
