package bridge

import (
	"fmt"
	"strconv"
	"strings"
)

// ListWindowNodes enumerates top-level windows as live handles, unwrapping
// JVM root nodes. The caller owns every returned handle.
func ListWindowNodes(provider Provider) ([]Node, error) {
	roots, err := provider.Windows()
	if err != nil {
		return nil, err
	}
	var out []Node
	for _, r := range roots {
		if r.Kind() != KindRoot {
			out = append(out, r)
			continue
		}
		children, err := r.Children()
		if err == nil {
			out = append(out, children...)
		}
		r.Dispose()
	}
	return out, nil
}

// FindWindow picks one window by JVM id and/or title substring, disposing
// every handle that is not returned. With no filters and exactly one
// window, that window is returned.
func FindWindow(provider Provider, jvm int, title string) (Node, error) {
	windows, err := ListWindowNodes(provider)
	if err != nil {
		return nil, err
	}
	var match Node
	var ambiguous []string
	for _, w := range windows {
		t, _ := w.Title()
		if jvm != 0 && w.JvmID() != jvm {
			w.Dispose()
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(t), strings.ToLower(title)) {
			w.Dispose()
			continue
		}
		if match != nil {
			ambiguous = append(ambiguous, fmt.Sprintf("%q (jvm %d)", t, w.JvmID()))
			w.Dispose()
			continue
		}
		match = w
	}
	if match == nil {
		if jvm == 0 && title == "" {
			return nil, fmt.Errorf("no Java application windows found")
		}
		return nil, fmt.Errorf("no window matches jvm=%d window=%q", jvm, title)
	}
	if len(ambiguous) > 0 {
		t, _ := match.Title()
		match.Dispose()
		return nil, fmt.Errorf("multiple windows match, narrow by jvm or a longer title: %q, %s",
			t, strings.Join(ambiguous, ", "))
	}
	return match, nil
}

// ParseChildPath parses a dot-separated child-index path like "0.2.1".
func ParseChildPath(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ".")
	idx := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid child path %q: segment %q is not a non-negative index", s, p)
		}
		idx[i] = n
	}
	return idx, nil
}

// DescendChildPath walks child indices down from start, consuming start
// and every intermediate handle. The caller owns the returned handle.
func DescendChildPath(start Node, path []int) (Node, error) {
	current := start
	for depth, want := range path {
		children, err := current.Children()
		if err != nil {
			current.Dispose()
			return nil, fmt.Errorf("reading children at depth %d: %w", depth, err)
		}
		if want >= len(children) {
			for _, c := range children {
				c.Dispose()
			}
			current.Dispose()
			return nil, fmt.Errorf("child index %d out of range at depth %d (%d children)", want, depth, len(children))
		}
		for i, c := range children {
			if i != want {
				c.Dispose()
			}
		}
		current.Dispose()
		current = children[want]
	}
	return current, nil
}

// ParsePropertyOptionList parses a comma-separated option list ("all" or
// labels/slugs like "context-info,value") into a flag set. An empty
// string selects the defaults.
func ParsePropertyOptionList(s string) (PropertyOptions, error) {
	if s == "" {
		return DefaultPropertyOptions, nil
	}
	if s == "all" {
		var opts PropertyOptions
		for _, ol := range optionLabels {
			opts = opts.With(ol.Flag, true)
		}
		return opts, nil
	}
	var opts PropertyOptions
	for _, part := range strings.Split(s, ",") {
		flag, err := ParsePropertyOption(strings.TrimSpace(part))
		if err != nil {
			return 0, err
		}
		opts = opts.With(flag, true)
	}
	return opts, nil
}

// ParseEventKindList parses a comma-separated event kind list; "all" or
// an empty string selects every kind.
func ParseEventKindList(s string) ([]EventKind, error) {
	if s == "" || s == "all" {
		return AllEventKinds(), nil
	}
	var kinds []EventKind
	for _, part := range strings.Split(s, ",") {
		k, err := ParseEventKind(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
