package model

import (
	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// Node is the serializable summary of one accessible node, used by the
// CLI and MCP outputs. Keys are abbreviated to keep dumps small.
type Node struct {
	Role     string `yaml:"r"            json:"r"`
	Title    string `yaml:"t,omitempty"  json:"t,omitempty"`
	Kind     string `yaml:"k,omitempty"  json:"k,omitempty"`
	Bounds   [4]int `yaml:"b"            json:"b"`
	Index    int    `yaml:"i"            json:"i"` // index in parent, -1 when not index-addressable
	Children []Node `yaml:"c,omitempty"  json:"c,omitempty"`
}

// Snapshot materializes the provider's current accessible tree into
// summaries, releasing every handle it touches. depth limits traversal
// (0 = unlimited).
func Snapshot(provider bridge.Provider, depth int) ([]Node, error) {
	roots, err := provider.Windows()
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(roots))
	for _, r := range roots {
		nodes = append(nodes, fromBridge(r, depth, 1))
		r.Dispose()
	}
	return nodes, nil
}

// FromNode converts a single node and its subtree. The caller keeps
// ownership of n.
func FromNode(n bridge.Node, depth int) Node {
	return fromBridge(n, depth, 1)
}

// fromBridge converts one node and its subtree, disposing child handles
// as it goes. The caller still owns n.
func fromBridge(n bridge.Node, maxDepth, level int) Node {
	out := Node{
		Kind:  n.Kind().String(),
		Index: n.IndexInParent(),
	}
	// Unreadable attributes stay empty rather than failing the dump;
	// the node may have vanished mid-walk.
	out.Role, _ = n.Role()
	out.Title, _ = n.Title()
	if rect, err := n.ScreenRect(); err == nil {
		out.Bounds = [4]int{rect.X, rect.Y, rect.Width, rect.Height}
	}

	if maxDepth > 0 && level >= maxDepth {
		return out
	}
	children, err := n.Children()
	if err != nil {
		return out
	}
	for _, c := range children {
		out.Children = append(out.Children, fromBridge(c, maxDepth, level+1))
		c.Dispose()
	}
	return out
}

// CountNodes returns the total number of nodes in the forest.
func CountNodes(nodes []Node) int {
	n := len(nodes)
	for i := range nodes {
		n += CountNodes(nodes[i].Children)
	}
	return n
}
