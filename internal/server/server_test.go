package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/bridge/sim"
)

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in result")
	return ""
}

func TestHandleWindows(t *testing.T) {
	s := New(Config{Provider: sim.NewDemo(), CacheTTL: 0})

	result, err := s.handleWindows(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text := textOf(t, result)
	if !strings.Contains(text, "SwingSet Demo") {
		t.Errorf("window listing missing demo window:\n%s", text)
	}
	if !strings.Contains(text, "jvm: 4242") {
		t.Errorf("window listing missing jvm id:\n%s", text)
	}
}

func TestHandleTree_RoleFilter(t *testing.T) {
	s := New(Config{Provider: sim.NewDemo(), CacheTTL: 0})

	result, err := s.handleTree(context.Background(), callRequest(map[string]interface{}{
		"roles": "push button",
		"flat":  true,
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text := textOf(t, result)
	if !strings.Contains(text, "push button") {
		t.Errorf("filtered tree missing buttons:\n%s", text)
	}
	if strings.Contains(text, "menu item") {
		t.Errorf("role filter leaked other roles:\n%s", text)
	}
}

func TestHandleProps_PathDescent(t *testing.T) {
	tree := sim.NewDemo()
	s := New(Config{Provider: tree, CacheTTL: 0})

	// Window child 2 is the content panel; its child 0 is the Name field.
	result, err := s.handleProps(context.Background(), callRequest(map[string]interface{}{
		"window":  "SwingSet",
		"path":    "2.0",
		"options": "context-info,value",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text := textOf(t, result)
	if !strings.Contains(text, "Duke") {
		t.Errorf("props missing field value:\n%s", text)
	}
	if open := tree.OpenHandles(); open != 0 {
		t.Errorf("props leaked %d handles", open)
	}
}

func TestHandleProps_BadPath(t *testing.T) {
	s := New(Config{Provider: sim.NewDemo(), CacheTTL: 0})

	result, err := s.handleProps(context.Background(), callRequest(map[string]interface{}{
		"path": "99",
	}))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !result.IsError {
		t.Error("out-of-range path should be a tool error")
	}
}

func TestTreeCache_ServesWithinTTL(t *testing.T) {
	tree := sim.NewDemo()
	cache := NewTreeCache(time.Minute)

	first, err := cache.Snapshot(tree, 0, "", 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	// The remote tree changes, but the cached read stays stable.
	jvm := tree.AddJvm(7)
	jvm.AddWindow("New", bridge.Rect{})

	second, err := cache.Snapshot(tree, 0, "", 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("cache returned a fresh read within TTL: %d vs %d roots", len(second), len(first))
	}

	cache.InvalidateAll()
	third, err := cache.Snapshot(tree, 0, "", 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(third) != len(first)+1 {
		t.Errorf("invalidation did not force a fresh read: %d roots", len(third))
	}
}
