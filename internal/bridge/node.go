package bridge

import (
	"errors"
	"fmt"
)

// Point is a screen coordinate in pixels.
type Point struct {
	X, Y int
}

// Rect is a screen rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether p falls inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// NodeKind distinguishes the three levels of the accessible hierarchy.
type NodeKind int

const (
	// KindRoot is a JVM root pseudo-node grouping one process's windows.
	KindRoot NodeKind = iota
	// KindWindow is a top-level accessible window.
	KindWindow
	// KindContext is any accessible object below a window.
	KindContext
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "jvm"
	case KindWindow:
		return "window"
	case KindContext:
		return "context"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a handle over one remote accessible object. The remote object is
// mutable and may vanish at any time; accessors return NodeGoneError once
// it has. Every handle must be disposed exactly once; access after Dispose
// also reports NodeGoneError.
type Node interface {
	Kind() NodeKind
	JvmID() int

	Title() (string, error)
	Role() (string, error)

	// Parent materializes a fresh handle for the parent object, or nil
	// for a top-level node. The caller owns the returned handle.
	Parent() (Node, error)

	// Children materializes fresh handles for the current children. The
	// caller owns every returned handle.
	Children() ([]Node, error)

	// IndexInParent returns the node's index within its parent's child
	// list, or -1 when the node is not index-addressable (JVM roots and
	// windows).
	IndexInParent() int

	ScreenRect() (Rect, error)

	// Properties fetches exactly the property groups selected by opts.
	Properties(opts PropertyOptions) (PropertyList, error)

	// TooltipProperties fetches the short list shown in hover tooltips.
	TooltipProperties() (PropertyList, error)

	// Refresh drops any remotely cached state for the object.
	Refresh() error

	// Equal reports whether the other handle refers to the same remote
	// object.
	Equal(other Node) bool

	// Dispose releases the native handle. Exactly once per handle.
	Dispose()
}

// NodeGoneError reports that a node's remote object is no longer
// resolvable. Expected during event handling; callers downgrade it to a
// log row rather than failing.
type NodeGoneError struct {
	Op  string
	Err error
}

func (e *NodeGoneError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: accessible object is gone: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: accessible object is gone", e.Op)
}

func (e *NodeGoneError) Unwrap() error { return e.Err }

// IsNodeGone reports whether err is (or wraps) a NodeGoneError.
func IsNodeGone(err error) bool {
	var gone *NodeGoneError
	return errors.As(err, &gone)
}
