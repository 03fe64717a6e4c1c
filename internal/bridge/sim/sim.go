// Package sim is an in-process accessibility provider backed by a
// scriptable in-memory tree. It stands in for the native Access Bridge in
// tests, the demo TUI, and --sim CLI runs. Handle accounting (open
// handles, double disposes) is tracked so tests can assert the
// release-exactly-once invariant.
package sim

import (
	"fmt"
	"sync"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// Tree is a simulated accessibility provider.
type Tree struct {
	mu             sync.Mutex
	nextID         int
	jvms           []*Object
	subs           map[bridge.EventKind]bridge.Handler
	openHandles    int
	totalHandles   int
	doubleDisposes int
	shutdown       bool
}

// New creates an empty simulated provider.
func New() *Tree {
	return &Tree{subs: make(map[bridge.EventKind]bridge.Handler)}
}

// Object is one simulated accessible object. Objects form the remote tree
// that Node handles point into; mutating an Object models the target
// application changing under the inspector.
type Object struct {
	t        *Tree
	id       int
	kind     bridge.NodeKind
	jvmID    int
	title    string
	role     string
	rect     bridge.Rect
	parent   *Object
	children []*Object
	value    string
	text     string
	actions  []string
	gone     bool
}

// AddJvm adds a JVM root pseudo-node for a simulated process.
func (t *Tree) AddJvm(jvmID int) *Object {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	obj := &Object{
		t:     t,
		id:    t.nextID,
		kind:  bridge.KindRoot,
		jvmID: jvmID,
		title: fmt.Sprintf("JVM %d", jvmID),
		role:  "jvm",
	}
	t.jvms = append(t.jvms, obj)
	return obj
}

// AddWindow adds a top-level window under a JVM root.
func (o *Object) AddWindow(title string, rect bridge.Rect) *Object {
	return o.add(bridge.KindWindow, "frame", title, rect)
}

// AddChild adds an accessible context below a window or context.
func (o *Object) AddChild(role, title string, rect bridge.Rect) *Object {
	return o.add(bridge.KindContext, role, title, rect)
}

func (o *Object) add(kind bridge.NodeKind, role, title string, rect bridge.Rect) *Object {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	o.t.nextID++
	child := &Object{
		t:      o.t,
		id:     o.t.nextID,
		kind:   kind,
		jvmID:  o.jvmID,
		title:  title,
		role:   role,
		rect:   rect,
		parent: o,
	}
	o.children = append(o.children, child)
	return child
}

// SetTitle changes the object's title in place.
func (o *Object) SetTitle(title string) {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	o.title = title
}

// SetRect changes the object's screen rectangle in place.
func (o *Object) SetRect(rect bridge.Rect) {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	o.rect = rect
}

// SetValue sets the value reported in the Value property group.
func (o *Object) SetValue(value string) {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	o.value = value
}

// SetText sets the text reported in the Text property group.
func (o *Object) SetText(text string) {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	o.text = text
}

// SetActions sets the action names reported in the Actions group.
func (o *Object) SetActions(actions ...string) {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	o.actions = actions
}

// Remove detaches the object from its parent. Outstanding handles keep
// resolving it until MarkGone; this models a transient node that left the
// displayed tree but still answers queries.
func (o *Object) Remove() {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	if o.parent == nil {
		for i, jvm := range o.t.jvms {
			if jvm == o {
				o.t.jvms = append(o.t.jvms[:i], o.t.jvms[i+1:]...)
				return
			}
		}
		return
	}
	siblings := o.parent.children
	for i, c := range siblings {
		if c == o {
			o.parent.children = append(siblings[:i], siblings[i+1:]...)
			return
		}
	}
}

// MarkGone makes every outstanding and future handle for the object (and
// its subtree) fail with NodeGoneError.
func (o *Object) MarkGone() {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	markGone(o)
}

func markGone(o *Object) {
	o.gone = true
	for _, c := range o.children {
		markGone(c)
	}
}

// Handle materializes a fresh node handle for the object, as an event
// source would. The caller owns the handle.
func (o *Object) Handle() bridge.Node {
	o.t.mu.Lock()
	defer o.t.mu.Unlock()
	return o.t.newHandle(o)
}

// Fire delivers an event for the object to the subscribed handler, on the
// calling goroutine. The source handle is only materialized when a
// handler is subscribed. Returns true if a handler ran.
func (t *Tree) Fire(kind bridge.EventKind, source *Object, old, new any) bool {
	t.mu.Lock()
	h, ok := t.subs[kind]
	if !ok {
		t.mu.Unlock()
		return false
	}
	var src bridge.Node
	if source != nil {
		src = t.newHandle(source)
	}
	jvmID := 0
	if source != nil {
		jvmID = source.jvmID
	}
	t.mu.Unlock()

	h(bridge.Event{Kind: kind, JvmID: jvmID, Source: src, Old: old, New: new})
	return true
}

// OpenHandles returns the number of issued, not-yet-disposed handles.
func (t *Tree) OpenHandles() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.openHandles
}

// TotalHandles returns the number of handles ever issued.
func (t *Tree) TotalHandles() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalHandles
}

// DoubleDisposes returns how many handles were disposed more than once.
func (t *Tree) DoubleDisposes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doubleDisposes
}

// Subscribed returns the currently subscribed event kinds.
func (t *Tree) Subscribed() []bridge.EventKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	var kinds []bridge.EventKind
	for _, k := range bridge.AllEventKinds() {
		if _, ok := t.subs[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Windows implements bridge.Provider.
func (t *Tree) Windows() ([]bridge.Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shutdown {
		return nil, fmt.Errorf("sim provider is shut down")
	}
	nodes := make([]bridge.Node, 0, len(t.jvms))
	for _, jvm := range t.jvms {
		nodes = append(nodes, t.newHandle(jvm))
	}
	return nodes, nil
}

// Subscribe implements bridge.Provider.
func (t *Tree) Subscribe(kind bridge.EventKind, h bridge.Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.shutdown {
		return fmt.Errorf("sim provider is shut down")
	}
	t.subs[kind] = h
	return nil
}

// Unsubscribe implements bridge.Provider.
func (t *Tree) Unsubscribe(kind bridge.EventKind) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, kind)
	return nil
}

// Shutdown implements bridge.Provider.
func (t *Tree) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shutdown = true
	t.subs = make(map[bridge.EventKind]bridge.Handler)
}

// newHandle issues a handle. Caller must hold t.mu.
func (t *Tree) newHandle(obj *Object) *handle {
	t.openHandles++
	t.totalHandles++
	return &handle{t: t, obj: obj}
}

// NewDemo builds a provider with a small Swing-like application tree,
// used by --sim CLI runs and the quickstart docs.
func NewDemo() *Tree {
	t := New()
	jvm := t.AddJvm(4242)
	win := jvm.AddWindow("SwingSet Demo", bridge.Rect{X: 120, Y: 80, Width: 800, Height: 600})

	menuBar := win.AddChild("menu bar", "", bridge.Rect{X: 120, Y: 80, Width: 800, Height: 24})
	fileMenu := menuBar.AddChild("menu", "File", bridge.Rect{X: 124, Y: 82, Width: 40, Height: 20})
	fileMenu.AddChild("menu item", "Open", bridge.Rect{})
	fileMenu.AddChild("menu item", "Exit", bridge.Rect{})

	toolbar := win.AddChild("tool bar", "", bridge.Rect{X: 120, Y: 104, Width: 800, Height: 32})
	save := toolbar.AddChild("push button", "Save", bridge.Rect{X: 124, Y: 108, Width: 60, Height: 24})
	save.SetActions("click")

	panel := win.AddChild("panel", "Content", bridge.Rect{X: 120, Y: 136, Width: 800, Height: 544})
	field := panel.AddChild("text", "Name", bridge.Rect{X: 140, Y: 160, Width: 220, Height: 28})
	field.SetValue("Duke")
	field.SetText("Duke")
	ok := panel.AddChild("push button", "OK", bridge.Rect{X: 140, Y: 210, Width: 80, Height: 28})
	ok.SetActions("click")
	return t
}
