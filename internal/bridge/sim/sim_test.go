package sim

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

func TestHandleAccounting(t *testing.T) {
	tree := New()
	jvm := tree.AddJvm(1)
	jvm.AddWindow("Main", bridge.Rect{})

	roots, err := tree.Windows()
	if err != nil {
		t.Fatalf("windows failed: %v", err)
	}
	children, err := roots[0].Children()
	if err != nil {
		t.Fatalf("children failed: %v", err)
	}
	if tree.OpenHandles() != 2 {
		t.Fatalf("expected 2 open handles, got %d", tree.OpenHandles())
	}

	children[0].Dispose()
	roots[0].Dispose()
	if tree.OpenHandles() != 0 {
		t.Errorf("expected 0 open handles, got %d", tree.OpenHandles())
	}

	roots[0].Dispose()
	if tree.DoubleDisposes() != 1 {
		t.Errorf("double dispose not recorded")
	}
	if _, err := roots[0].Title(); !bridge.IsNodeGone(err) {
		t.Errorf("use after dispose should report NodeGoneError, got %v", err)
	}
}

func TestMarkGoneInvalidatesSubtree(t *testing.T) {
	tree := New()
	jvm := tree.AddJvm(1)
	win := jvm.AddWindow("Main", bridge.Rect{})
	child := win.AddChild("panel", "", bridge.Rect{})

	h := child.Handle()
	win.MarkGone()
	if err := h.Refresh(); !bridge.IsNodeGone(err) {
		t.Errorf("expected NodeGoneError after subtree gone, got %v", err)
	}
	h.Dispose()
}

func TestProperties_GroupsMatchFlagsBijectively(t *testing.T) {
	tree := New()
	jvm := tree.AddJvm(1)
	win := jvm.AddWindow("Main", bridge.Rect{})
	field := win.AddChild("text", "Name", bridge.Rect{})
	field.SetValue("Duke")

	h := field.Handle()
	defer h.Dispose()

	props, err := h.Properties(bridge.OptContextInfo | bridge.OptText | bridge.OptActions)
	if err != nil {
		t.Fatalf("properties failed: %v", err)
	}
	want := []string{"Context Info", "Text", "Actions"}
	if diff := cmp.Diff(want, props.GroupNames()); diff != "" {
		t.Errorf("group names (-want +got):\n%s", diff)
	}

	// Toggling one flag off removes exactly that group.
	props, err = h.Properties(bridge.OptContextInfo | bridge.OptActions)
	if err != nil {
		t.Fatalf("properties failed: %v", err)
	}
	want = []string{"Context Info", "Actions"}
	if diff := cmp.Diff(want, props.GroupNames()); diff != "" {
		t.Errorf("group names (-want +got):\n%s", diff)
	}
}

func TestIndexInParent(t *testing.T) {
	tree := New()
	jvm := tree.AddJvm(1)
	win := jvm.AddWindow("Main", bridge.Rect{})
	a := win.AddChild("panel", "a", bridge.Rect{})
	b := win.AddChild("panel", "b", bridge.Rect{})
	_ = a

	hb := b.Handle()
	defer hb.Dispose()
	if got := hb.IndexInParent(); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}

	hw := win.Handle()
	defer hw.Dispose()
	if got := hw.IndexInParent(); got != -1 {
		t.Errorf("windows are not index-addressable, got %d", got)
	}
}

func TestFireReachesOnlySubscribedKind(t *testing.T) {
	tree := New()
	jvm := tree.AddJvm(7)
	win := jvm.AddWindow("Main", bridge.Rect{})

	var got []bridge.Event
	if err := tree.Subscribe(bridge.EventFocusGained, func(ev bridge.Event) {
		got = append(got, ev)
		ev.Source.Dispose()
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if tree.Fire(bridge.EventFocusLost, win, nil, nil) {
		t.Error("unsubscribed kind fired")
	}
	if !tree.Fire(bridge.EventFocusGained, win, nil, nil) {
		t.Error("subscribed kind did not fire")
	}
	if len(got) != 1 || got[0].JvmID != 7 || got[0].Kind != bridge.EventFocusGained {
		t.Errorf("unexpected event: %+v", got)
	}
	if tree.OpenHandles() != 0 {
		t.Errorf("event handle leaked")
	}

	if err := tree.Unsubscribe(bridge.EventFocusGained); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	if tree.Fire(bridge.EventFocusGained, win, nil, nil) {
		t.Error("fired after unsubscribe")
	}
}
