package inspect

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/bridge/sim"
)

// newTestController builds an initialized controller over the sim tree.
func newTestController(t *testing.T, tree *sim.Tree) *Controller {
	t.Helper()
	c := New(Config{Provider: tree})
	if err := c.Initialize(); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	t.Cleanup(c.Dispose)
	return c
}

// flush waits until every queued executor task has run.
func flush(t *testing.T, c *Controller) {
	t.Helper()
	if err := c.exec.Call(func() error { return nil }); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
}

func TestRouter_ToggleControlsSubscription(t *testing.T) {
	tree, _, _ := demoTree()
	c := newTestController(t, tree)

	if got := tree.Subscribed(); len(got) != 0 {
		t.Fatalf("expected no subscriptions initially, got %v", got)
	}
	if err := c.SetEventEnabled(bridge.EventFocusGained, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if got := tree.Subscribed(); len(got) != 1 || got[0] != bridge.EventFocusGained {
		t.Fatalf("expected focusGained subscribed, got %v", got)
	}
	if err := c.SetEventEnabled(bridge.EventFocusGained, false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if got := tree.Subscribed(); len(got) != 0 {
		t.Fatalf("expected no subscriptions after disable, got %v", got)
	}

	// Firing a disabled kind reaches no handler at all.
	if tree.Fire(bridge.EventFocusGained, nil, nil, nil) {
		t.Error("disabled event kind still had a handler")
	}
}

func TestRouter_EventBecomesLogRowWithDetails(t *testing.T) {
	tree, _, panel := demoTree()
	ok := panel.AddChild("push button", "Run", bridge.Rect{})
	c := newTestController(t, tree)

	if err := c.SetEventEnabled(bridge.EventFocusGained, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	tree.Fire(bridge.EventFocusGained, ok, nil, nil)
	flush(t, c)

	entries := c.LogEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 row, got %d", len(entries))
	}
	e := entries[0]
	if e.IsError {
		t.Fatalf("unexpected error row: %s", e.Text)
	}
	if e.Text != `FocusGained: push button "Run"` {
		t.Errorf("unexpected row text: %q", e.Text)
	}
	if !e.HasDetails() {
		t.Error("expected a details action")
	}
}

func TestRouter_GoneSourceBecomesErrorRow(t *testing.T) {
	tree, _, panel := demoTree()
	ghost := panel.AddChild("push button", "Ghost", bridge.Rect{})
	c := newTestController(t, tree)

	if err := c.SetEventEnabled(bridge.EventFocusGained, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}

	ghost.MarkGone()
	tree.Fire(bridge.EventFocusGained, ghost, nil, nil)
	flush(t, c)

	entries := c.LogEntries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(entries))
	}
	e := entries[0]
	if !e.IsError {
		t.Fatal("expected an error row")
	}
	if !strings.Contains(e.Text, "FocusGained") {
		t.Errorf("row does not name the event: %q", e.Text)
	}
	if !strings.Contains(e.Text, "gone") {
		t.Errorf("row does not carry the failure: %q", e.Text)
	}
	if e.HasDetails() {
		t.Error("error row must not be detail-eligible")
	}
	if open := tree.OpenHandles(); open != countRows(c.Roots()) {
		t.Errorf("event source handle leaked: %d open", open)
	}
}

func TestRouter_ValueChangePreservesOldAndNew(t *testing.T) {
	tree, _, panel := demoTree()
	field := panel.AddChild("text", "Name", bridge.Rect{})
	c := newTestController(t, tree)

	if err := c.SetEventEnabled(bridge.EventPropertyValueChange, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	tree.Fire(bridge.EventPropertyValueChange, field, "Duke", "Duchess")
	flush(t, c)

	entries := c.LogEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 row, got %d", len(entries))
	}
	want := `PropertyValueChange: text "Name": "Duke" -> "Duchess"`
	if entries[0].Text != want {
		t.Errorf("expected %q, got %q", want, entries[0].Text)
	}
}

func TestRouter_CaretChangeStaysNumericUntilRender(t *testing.T) {
	tree, _, panel := demoTree()
	field := panel.AddChild("text", "Name", bridge.Rect{})
	c := newTestController(t, tree)

	if err := c.SetEventEnabled(bridge.EventPropertyCaretChange, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	tree.Fire(bridge.EventPropertyCaretChange, field, 3, 17)
	flush(t, c)

	entries := c.LogEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 row, got %d", len(entries))
	}
	want := `PropertyCaretChange: text "Name": 3 -> 17`
	if entries[0].Text != want {
		t.Errorf("expected %q, got %q", want, entries[0].Text)
	}
}

func TestRouter_DetailsReselectsSource(t *testing.T) {
	tree, _, panel := demoTree()
	run := panel.AddChild("push button", "Run", bridge.Rect{})
	var selected []string
	c := New(Config{
		Provider: tree,
		OnSelectionChanged: func(n *TreeNode, _ bridge.PropertyList) {
			if n != nil {
				selected = append(selected, n.Label())
			}
		},
	})
	if err := c.Initialize(); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	defer c.Dispose()

	if err := c.SetEventEnabled(bridge.EventFocusGained, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	tree.Fire(bridge.EventFocusGained, run, nil, nil)
	flush(t, c)

	entries := c.LogEntries()
	if len(entries) != 1 || !entries[0].HasDetails() {
		t.Fatalf("expected one detail-eligible row")
	}
	if err := c.ShowEventDetails(entries[0].Seq); err != nil {
		t.Fatalf("details failed: %v", err)
	}
	if len(selected) != 1 || selected[0] != `push button "Run"` {
		t.Errorf("expected Run selected, got %v", selected)
	}
}

func TestRouter_EventAfterCloseReleasesSource(t *testing.T) {
	tree, _, panel := demoTree()
	late := panel.AddChild("push button", "Late", bridge.Rect{})

	e := newExecutor(nil)
	r := newEventRouter(tree, e, NewEventLog(), zap.NewNop())
	if err := r.SetEnabled(bridge.EventFocusGained, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	e.Close()

	// The dispatch loses the shutdown race; the source handle the
	// provider materialized must still be released.
	tree.Fire(bridge.EventFocusGained, late, nil, nil)
	if open := tree.OpenHandles(); open != 0 {
		t.Errorf("late event leaked its source handle: %d open", open)
	}
}

func TestRouter_JavaShutdownRefreshesTree(t *testing.T) {
	tree, _, _ := demoTree()
	c := newTestController(t, tree)

	if err := c.SetEventEnabled(bridge.EventJavaShutdown, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	jvm2 := tree.AddJvm(200)
	jvm2.AddWindow("Second", bridge.Rect{})
	tree.Fire(bridge.EventJavaShutdown, nil, nil, nil)
	flush(t, c)

	if got := len(c.Roots()); got != 2 {
		t.Errorf("expected tree refreshed to 2 roots, got %d", got)
	}
	entries := c.LogEntries()
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Text, "JavaShutdown") {
		t.Errorf("expected JavaShutdown row, got %v", entries)
	}
}
