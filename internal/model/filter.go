package model

import "strings"

// FilterByRole prunes the forest to nodes whose role is in roles,
// keeping ancestors of matches so the tree stays connected.
func FilterByRole(nodes []Node, roles []string) []Node {
	if len(roles) == 0 {
		return nodes
	}
	want := make(map[string]bool, len(roles))
	for _, r := range roles {
		want[strings.TrimSpace(r)] = true
	}
	var out []Node
	for _, n := range nodes {
		if kept, ok := filterNodeByRole(n, want); ok {
			out = append(out, kept)
		}
	}
	return out
}

func filterNodeByRole(n Node, want map[string]bool) (Node, bool) {
	var children []Node
	for _, c := range n.Children {
		if kept, ok := filterNodeByRole(c, want); ok {
			children = append(children, kept)
		}
	}
	if !want[n.Role] && len(children) == 0 {
		return Node{}, false
	}
	n.Children = children
	return n, true
}

// FilterByText keeps subtrees containing a case-insensitive substring
// match on title or role.
func FilterByText(nodes []Node, text string) []Node {
	textLower := strings.ToLower(text)
	var out []Node
	for _, n := range nodes {
		if kept, ok := filterNodeByText(n, textLower); ok {
			out = append(out, kept)
		}
	}
	return out
}

func filterNodeByText(n Node, textLower string) (Node, bool) {
	var children []Node
	for _, c := range n.Children {
		if kept, ok := filterNodeByText(c, textLower); ok {
			children = append(children, kept)
		}
	}
	selfMatch := strings.Contains(strings.ToLower(n.Title), textLower) ||
		strings.Contains(strings.ToLower(n.Role), textLower)
	if !selfMatch && len(children) == 0 {
		return Node{}, false
	}
	n.Children = children
	return n, true
}
