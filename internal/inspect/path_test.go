package inspect

import (
	"testing"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/bridge/sim"
)

func TestBuildNodePath_RootFirst(t *testing.T) {
	tree := sim.New()
	jvm := tree.AddJvm(1)
	win := jvm.AddWindow("Main", bridge.Rect{Width: 100, Height: 100})
	panel := win.AddChild("panel", "", bridge.Rect{})
	button := panel.AddChild("push button", "OK", bridge.Rect{})

	p, err := BuildNodePath(button.Handle())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer p.Dispose()

	if p.Len() != 4 {
		t.Fatalf("expected 4 segments, got %d", p.Len())
	}
	if p.At(0).Kind() != bridge.KindRoot {
		t.Errorf("expected root first, got %v", p.At(0).Kind())
	}
	if title, _ := p.Leaf().Title(); title != "OK" {
		t.Errorf("expected leaf OK, got %q", title)
	}
}

func TestBuildNodePath_GoneParentReportsError(t *testing.T) {
	tree := sim.New()
	jvm := tree.AddJvm(1)
	win := jvm.AddWindow("Main", bridge.Rect{})
	child := win.AddChild("panel", "", bridge.Rect{})

	h := child.Handle()
	child.MarkGone()

	p, err := BuildNodePath(h)
	if err == nil {
		t.Fatal("expected error for gone node")
	}
	if !bridge.IsNodeGone(err) {
		t.Errorf("expected NodeGoneError, got %v", err)
	}
	p.Dispose()
}

func TestNodePathAt_FindsDeepestHit(t *testing.T) {
	tree := sim.New()
	jvm := tree.AddJvm(1)
	win := jvm.AddWindow("Main", bridge.Rect{X: 0, Y: 0, Width: 400, Height: 300})
	panel := win.AddChild("panel", "", bridge.Rect{X: 10, Y: 10, Width: 200, Height: 200})
	panel.AddChild("push button", "OK", bridge.Rect{X: 20, Y: 20, Width: 50, Height: 20})
	// JVM roots have no rectangle in the sim; give this one the window's.
	jvm.SetRect(bridge.Rect{X: 0, Y: 0, Width: 400, Height: 300})

	p, err := NodePathAt(tree, bridge.Point{X: 30, Y: 25})
	if err != nil {
		t.Fatalf("hit test failed: %v", err)
	}
	if p == nil {
		t.Fatal("expected a hit")
	}
	defer p.Dispose()
	if title, _ := p.Leaf().Title(); title != "OK" {
		t.Errorf("expected OK, got %q", title)
	}
}

func TestNodePathAt_MissReturnsNilAndLeaksNothing(t *testing.T) {
	tree := sim.New()
	jvm := tree.AddJvm(1)
	jvm.SetRect(bridge.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	jvm.AddWindow("Main", bridge.Rect{X: 0, Y: 0, Width: 100, Height: 100})

	p, err := NodePathAt(tree, bridge.Point{X: 500, Y: 500})
	if err != nil {
		t.Fatalf("hit test failed: %v", err)
	}
	if p != nil {
		t.Fatal("expected no hit")
	}
	if open := tree.OpenHandles(); open != 0 {
		t.Errorf("hit test leaked %d handles", open)
	}
}
