package bridge

import (
	"fmt"
	"strings"
)

// Property is one name/value pair in a node's property bag. A property
// with children is a group; group values are usually empty.
type Property struct {
	Name     string     `yaml:"name"               json:"name"`
	Value    string     `yaml:"value,omitempty"    json:"value,omitempty"`
	Children []Property `yaml:"children,omitempty" json:"children,omitempty"`
}

// PropertyList is an ordered property bag.
type PropertyList []Property

// Group appends a named group and returns a pointer to it for filling.
func (l *PropertyList) Group(name string) *Property {
	*l = append(*l, Property{Name: name})
	return &(*l)[len(*l)-1]
}

// Add appends a name/value pair to the list.
func (l *PropertyList) Add(name string, value any) {
	*l = append(*l, Property{Name: name, Value: fmt.Sprint(value)})
}

// Add appends a name/value pair to the group.
func (p *Property) Add(name string, value any) {
	p.Children = append(p.Children, Property{Name: name, Value: fmt.Sprint(value)})
}

// Find returns the first property with the given name, searching groups
// depth-first, or nil.
func (l PropertyList) Find(name string) *Property {
	for i := range l {
		if l[i].Name == name {
			return &l[i]
		}
		if found := PropertyList(l[i].Children).Find(name); found != nil {
			return found
		}
	}
	return nil
}

// GroupNames returns the names of the top-level entries in order.
func (l PropertyList) GroupNames() []string {
	names := make([]string, len(l))
	for i := range l {
		names[i] = l[i].Name
	}
	return names
}

// Text renders the list as "name: value" lines, nesting groups with
// two-space indentation. This is the tooltip/body text format.
func (l PropertyList) Text() string {
	var b strings.Builder
	writePropertyText(&b, l, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writePropertyText(b *strings.Builder, props []Property, depth int) {
	for _, p := range props {
		for i := 0; i < depth; i++ {
			b.WriteString("  ")
		}
		if p.Value == "" && len(p.Children) > 0 {
			fmt.Fprintf(b, "%s:\n", p.Name)
		} else {
			fmt.Fprintf(b, "%s: %s\n", p.Name, p.Value)
		}
		writePropertyText(b, p.Children, depth+1)
	}
}
