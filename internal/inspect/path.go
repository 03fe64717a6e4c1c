package inspect

import (
	"fmt"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// NodePath is an ordered chain of accessible-node handles from a root to
// a leaf, used to re-find a node after the displayed tree changed. The
// path owns every handle it holds; Dispose releases them all. A path is
// only meaningful against the tree shape at the moment it is resolved.
type NodePath struct {
	nodes []bridge.Node // nodes[0] = root, last = leaf
}

// BuildNodePath walks parents from leaf up to its root and returns the
// root-first chain. The path adopts leaf; on error leaf is still adopted
// and must be released by disposing the returned path.
func BuildNodePath(leaf bridge.Node) (*NodePath, error) {
	p := &NodePath{nodes: []bridge.Node{leaf}}
	current := leaf
	for {
		parent, err := current.Parent()
		if err != nil {
			return p, fmt.Errorf("walking parents: %w", err)
		}
		if parent == nil {
			break
		}
		p.nodes = append(p.nodes, parent)
		current = parent
	}
	// Built leaf-up; store root-first.
	for i, j := 0, len(p.nodes)-1; i < j; i, j = i+1, j-1 {
		p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i]
	}
	return p, nil
}

// NodePathAt hit-tests the provider's current windows for the deepest
// node whose screen rectangle contains pt, and returns its path. Returns
// nil when no node contains the point.
func NodePathAt(provider bridge.Provider, pt bridge.Point) (*NodePath, error) {
	if provider == nil {
		return nil, nil
	}
	roots, err := provider.Windows()
	if err != nil {
		return nil, fmt.Errorf("enumerating windows: %w", err)
	}

	var path *NodePath
	for _, root := range roots {
		if path != nil {
			root.Dispose()
			continue
		}
		// JVM roots report no rectangle of their own; they are
		// transparent containers for hit testing.
		transparent := root.Kind() == bridge.KindRoot
		if !transparent && !containsPoint(root, pt) {
			root.Dispose()
			continue
		}
		chain, err := descendAt(root, pt)
		if err != nil {
			disposeAll(chain)
			return nil, err
		}
		if transparent && len(chain) == 1 && !containsPoint(root, pt) {
			// Nothing under the root actually contains the point.
			disposeAll(chain)
			continue
		}
		path = &NodePath{nodes: chain}
	}
	return path, nil
}

// descendAt returns the root-first chain from node down to the deepest
// descendant containing pt. The chain owns node and every retained child.
func descendAt(node bridge.Node, pt bridge.Point) ([]bridge.Node, error) {
	chain := []bridge.Node{node}
	current := node
	for {
		children, err := current.Children()
		if err != nil {
			return chain, fmt.Errorf("descending at %v: %w", pt, err)
		}
		var hit bridge.Node
		for _, c := range children {
			if hit == nil && containsPoint(c, pt) {
				hit = c
				continue
			}
			c.Dispose()
		}
		if hit == nil {
			return chain, nil
		}
		chain = append(chain, hit)
		current = hit
	}
}

// containsPoint is tolerant: a node whose rectangle cannot be read does
// not match.
func containsPoint(n bridge.Node, pt bridge.Point) bool {
	rect, err := n.ScreenRect()
	if err != nil {
		return false
	}
	return rect.Contains(pt)
}

// Len returns the number of segments in the path.
func (p *NodePath) Len() int {
	if p == nil {
		return 0
	}
	return len(p.nodes)
}

// At returns the i-th segment, root first.
func (p *NodePath) At(i int) bridge.Node { return p.nodes[i] }

// Leaf returns the final segment, or nil for an empty path.
func (p *NodePath) Leaf() bridge.Node {
	if p.Len() == 0 {
		return nil
	}
	return p.nodes[len(p.nodes)-1]
}

// Dispose releases every handle the path owns. Safe on nil.
func (p *NodePath) Dispose() {
	if p == nil {
		return
	}
	disposeAll(p.nodes)
	p.nodes = nil
}

// disposeParents releases every handle except the leaf, which the caller
// owns. Used when a path was built around a borrowed node.
func (p *NodePath) disposeParents() {
	if p == nil || len(p.nodes) == 0 {
		return
	}
	disposeAll(p.nodes[:len(p.nodes)-1])
	p.nodes = nil
}

func disposeAll(nodes []bridge.Node) {
	for _, n := range nodes {
		n.Dispose()
	}
}

// label is a best-effort display label for diagnostics; it never fails.
func label(n bridge.Node) string {
	if n == nil {
		return "<nil>"
	}
	role, err := n.Role()
	if err != nil {
		role = n.Kind().String()
	}
	title, err := n.Title()
	if err != nil || title == "" {
		return role
	}
	return fmt.Sprintf("%s %q", role, title)
}
