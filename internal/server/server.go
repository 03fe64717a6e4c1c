// Package server exposes the inspector as MCP tools.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
)

// Config holds MCP server configuration.
type Config struct {
	// Provider is the accessibility bridge the tools read from.
	Provider  bridge.Provider
	Transport string
	Port      int
	CacheTTL  time.Duration
}

// Server wraps the MCP server with the bridge provider and tree cache.
type Server struct {
	provider   bridge.Provider
	cache      *TreeCache
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// New creates and configures an MCP server with all inspector tools.
func New(cfg Config) *Server {
	s := &Server{
		provider: cfg.Provider,
		cache:    NewTreeCache(cfg.CacheTTL),
	}

	s.mcp = mcpserver.NewMCPServer(
		"access-bridge-explorer",
		"1.0.0",
	)

	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	// windows
	s.mcp.AddTool(
		mcp.NewTool("windows",
			mcp.WithDescription("List the top-level windows of every Java application reachable through the accessibility bridge"),
			mcp.WithNumber("jvm", mcp.Description("Filter by JVM id")),
		),
		s.handleWindows,
	)

	// tree
	s.mcp.AddTool(
		mcp.NewTool("tree",
			mcp.WithDescription("Dump the accessible object tree below a Java window. Returns nodes with roles, titles, bounds, and child indices."),
			mcp.WithNumber("jvm", mcp.Description("Scope to one JVM by id")),
			mcp.WithString("window", mcp.Description("Scope to one window by title substring")),
			mcp.WithNumber("depth", mcp.Description("Max depth to traverse (0 = unlimited)")),
			mcp.WithString("roles", mcp.Description("Comma-separated roles to include")),
			mcp.WithString("text", mcp.Description("Keep only subtrees matching this text")),
			mcp.WithBoolean("flat", mcp.Description("Flatten the tree into a list with role paths")),
		),
		s.handleTree,
	)

	// props
	s.mcp.AddTool(
		mcp.NewTool("props",
			mcp.WithDescription("Show the property groups of one accessible node, addressed by a dot-separated child-index path below a window (e.g. \"2.0.1\")"),
			mcp.WithNumber("jvm", mcp.Description("Scope to one JVM by id")),
			mcp.WithString("window", mcp.Description("Scope to one window by title substring")),
			mcp.WithString("path", mcp.Description("Dot-separated child-index path below the window")),
			mcp.WithString("options", mcp.Description("Comma-separated property groups to fetch (default set, or \"all\")")),
		),
		s.handleProps,
	)

	// watch
	s.mcp.AddTool(
		mcp.NewTool("watch",
			mcp.WithDescription("Collect accessibility events for a fixed duration and return them as rows"),
			mcp.WithString("events", mcp.Description("Comma-separated event kinds to enable (default: all)")),
			mcp.WithNumber("duration", mcp.Description("Seconds to collect (default: 5, max: 60)")),
		),
		s.handleWatch,
	)
}

// StringParam reads a string argument with a default.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// IntParam reads a numeric argument with a default. JSON numbers arrive
// as float64.
func IntParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// BoolParam reads a boolean argument with a default.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
