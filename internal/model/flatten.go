package model

// FlatNode is a node summary with a path breadcrumb instead of children.
type FlatNode struct {
	Role   string `yaml:"r"            json:"r"`
	Title  string `yaml:"t,omitempty"  json:"t,omitempty"`
	Kind   string `yaml:"k,omitempty"  json:"k,omitempty"`
	Bounds [4]int `yaml:"b"            json:"b"`
	Index  int    `yaml:"i"            json:"i"`
	Path   string `yaml:"p,omitempty"  json:"p,omitempty"`
}

// Flatten converts a node forest into a flat list. Each node gets a path
// string showing its location in the tree, roles joined with " > ".
func Flatten(nodes []Node) []FlatNode {
	var result []FlatNode
	for _, n := range nodes {
		flattenRecursive(n, "", &result)
	}
	return result
}

func flattenRecursive(n Node, parentPath string, result *[]FlatNode) {
	currentPath := n.Role
	if parentPath != "" {
		currentPath = parentPath + " > " + n.Role
	}

	*result = append(*result, FlatNode{
		Role:   n.Role,
		Title:  n.Title,
		Kind:   n.Kind,
		Bounds: n.Bounds,
		Index:  n.Index,
		Path:   currentPath,
	})

	for _, child := range n.Children {
		flattenRecursive(child, currentPath, result)
	}
}
