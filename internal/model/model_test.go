package model

import (
	"testing"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/bridge/sim"
)

func demoTree() *sim.Tree {
	tree := sim.New()
	jvm := tree.AddJvm(1)
	win := jvm.AddWindow("Main", bridge.Rect{X: 0, Y: 0, Width: 400, Height: 300})
	panel := win.AddChild("panel", "", bridge.Rect{X: 0, Y: 0, Width: 400, Height: 260})
	panel.AddChild("push button", "OK", bridge.Rect{X: 10, Y: 10, Width: 80, Height: 24})
	panel.AddChild("text", "Name", bridge.Rect{X: 10, Y: 44, Width: 200, Height: 24})
	return tree
}

func TestSnapshot_ReleasesAllHandles(t *testing.T) {
	tree := demoTree()
	nodes, err := Snapshot(tree, 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if got := CountNodes(nodes); got != 5 {
		t.Errorf("expected 5 nodes, got %d", got)
	}
	if open := tree.OpenHandles(); open != 0 {
		t.Errorf("snapshot leaked %d handles", open)
	}
}

func TestSnapshot_DepthLimit(t *testing.T) {
	tree := demoTree()
	nodes, err := Snapshot(tree, 2)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	// Depth 2 reaches the jvm root and its window, nothing below.
	if got := CountNodes(nodes); got != 2 {
		t.Errorf("expected 2 nodes at depth 2, got %d", got)
	}
	if open := tree.OpenHandles(); open != 0 {
		t.Errorf("snapshot leaked %d handles", open)
	}
}

func TestWindows_UnwrapsJvmRoots(t *testing.T) {
	tree := demoTree()
	wins, err := Windows(tree)
	if err != nil {
		t.Fatalf("windows failed: %v", err)
	}
	if len(wins) != 1 {
		t.Fatalf("expected 1 window, got %d", len(wins))
	}
	w := wins[0]
	if w.JvmID != 1 || w.Title != "Main" || w.Role != "frame" {
		t.Errorf("unexpected summary: %+v", w)
	}
	if w.Bounds != [4]int{0, 0, 400, 300} {
		t.Errorf("unexpected bounds: %v", w.Bounds)
	}
	if open := tree.OpenHandles(); open != 0 {
		t.Errorf("listing leaked %d handles", open)
	}
}

func TestFlatten_PathBreadcrumbs(t *testing.T) {
	tree := demoTree()
	nodes, err := Snapshot(tree, 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	flat := Flatten(nodes)
	if len(flat) != 5 {
		t.Fatalf("expected 5 flat nodes, got %d", len(flat))
	}
	last := flat[len(flat)-1]
	if last.Path != "jvm > frame > panel > text" {
		t.Errorf("unexpected path: %q", last.Path)
	}
}

func TestFilterByRole_KeepsAncestors(t *testing.T) {
	tree := demoTree()
	nodes, err := Snapshot(tree, 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	filtered := FilterByRole(nodes, []string{"push button"})
	if got := CountNodes(filtered); got != 4 {
		t.Errorf("expected button plus 3 ancestors, got %d nodes", got)
	}
	flat := Flatten(filtered)
	if flat[len(flat)-1].Title != "OK" {
		t.Errorf("expected the button kept, got %+v", flat[len(flat)-1])
	}
}

func TestFilterByText_MatchesTitleSubstring(t *testing.T) {
	tree := demoTree()
	nodes, err := Snapshot(tree, 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	filtered := FilterByText(nodes, "nam")
	flat := Flatten(filtered)
	if len(flat) == 0 || flat[len(flat)-1].Title != "Name" {
		t.Errorf("expected the Name field kept, got %v", flat)
	}
}
