package sim

import (
	"fmt"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// handle is one issued node handle. Handles are independent of each other:
// two handles for the same object dispose separately, and each must be
// disposed exactly once.
type handle struct {
	t        *Tree
	obj      *Object
	disposed bool
}

// guard validates the handle under t.mu. Caller must hold t.mu.
func (h *handle) guard(op string) error {
	if h.disposed {
		return &bridge.NodeGoneError{Op: op, Err: fmt.Errorf("handle already disposed")}
	}
	if h.t.shutdown {
		return &bridge.NodeGoneError{Op: op, Err: fmt.Errorf("provider shut down")}
	}
	if h.obj.gone {
		return &bridge.NodeGoneError{Op: op}
	}
	return nil
}

func (h *handle) Kind() bridge.NodeKind { return h.obj.kind }
func (h *handle) JvmID() int            { return h.obj.jvmID }

func (h *handle) Title() (string, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.guard("title"); err != nil {
		return "", err
	}
	return h.obj.title, nil
}

func (h *handle) Role() (string, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.guard("role"); err != nil {
		return "", err
	}
	return h.obj.role, nil
}

func (h *handle) Parent() (bridge.Node, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.guard("parent"); err != nil {
		return nil, err
	}
	if h.obj.parent == nil {
		return nil, nil
	}
	return h.t.newHandle(h.obj.parent), nil
}

func (h *handle) Children() ([]bridge.Node, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.guard("children"); err != nil {
		return nil, err
	}
	children := make([]bridge.Node, 0, len(h.obj.children))
	for _, c := range h.obj.children {
		children = append(children, h.t.newHandle(c))
	}
	return children, nil
}

func (h *handle) IndexInParent() int {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if h.obj.kind != bridge.KindContext || h.obj.parent == nil {
		return -1
	}
	for i, c := range h.obj.parent.children {
		if c == h.obj {
			return i
		}
	}
	return -1
}

func (h *handle) ScreenRect() (bridge.Rect, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.guard("screenRect"); err != nil {
		return bridge.Rect{}, err
	}
	return h.obj.rect, nil
}

func (h *handle) Properties(opts bridge.PropertyOptions) (bridge.PropertyList, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.guard("properties"); err != nil {
		return nil, err
	}

	obj := h.obj
	var props bridge.PropertyList
	if opts.Has(bridge.OptContextInfo) {
		g := props.Group("Context Info")
		g.Add("Name", obj.title)
		g.Add("Role", obj.role)
		g.Add("Index in parent", h.indexLocked())
		g.Add("Child count", len(obj.children))
		g.Add("Bounds", obj.rect)
	}
	if opts.Has(bridge.OptIcons) {
		props.Group("Icons").Add("Count", 0)
	}
	if opts.Has(bridge.OptKeyBindings) {
		props.Group("Key Bindings").Add("Count", 0)
	}
	if opts.Has(bridge.OptRelations) {
		props.Group("Relations").Add("Count", 0)
	}
	if opts.Has(bridge.OptParent) {
		g := props.Group("Parent")
		if obj.parent != nil {
			g.Add("Name", obj.parent.title)
			g.Add("Role", obj.parent.role)
		}
	}
	if opts.Has(bridge.OptTopLevelWindow) {
		g := props.Group("Top Level Window")
		if top := topWindow(obj); top != nil {
			g.Add("Name", top.title)
			g.Add("Bounds", top.rect)
		}
	}
	if opts.Has(bridge.OptText) {
		props.Group("Text").Add("Contents", obj.text)
	}
	if opts.Has(bridge.OptValue) {
		props.Group("Value").Add("Current", obj.value)
	}
	if opts.Has(bridge.OptSelection) {
		props.Group("Selection").Add("Count", 0)
	}
	if opts.Has(bridge.OptTable) {
		props.Group("Table").Add("Rows", 0)
	}
	if opts.Has(bridge.OptActions) {
		g := props.Group("Actions")
		for i, a := range obj.actions {
			g.Add(fmt.Sprintf("Action %d", i+1), a)
		}
	}
	return props, nil
}

func (h *handle) indexLocked() int {
	if h.obj.parent == nil {
		return -1
	}
	for i, c := range h.obj.parent.children {
		if c == h.obj {
			return i
		}
	}
	return -1
}

func topWindow(obj *Object) *Object {
	for o := obj; o != nil; o = o.parent {
		if o.kind == bridge.KindWindow {
			return o
		}
	}
	return nil
}

func (h *handle) TooltipProperties() (bridge.PropertyList, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if err := h.guard("tooltipProperties"); err != nil {
		return nil, err
	}
	var props bridge.PropertyList
	props.Add("Name", h.obj.title)
	props.Add("Role", h.obj.role)
	props.Add("Bounds", h.obj.rect)
	return props, nil
}

func (h *handle) Refresh() error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return h.guard("refresh")
}

func (h *handle) Equal(other bridge.Node) bool {
	o, ok := other.(*handle)
	return ok && o.obj == h.obj
}

func (h *handle) Dispose() {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	if h.disposed {
		h.t.doubleDisposes++
		return
	}
	h.disposed = true
	h.t.openHandles--
}
