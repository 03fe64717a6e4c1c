package server

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/chrishoke/access-bridge-explorer/internal/bridge"
	"github.com/chrishoke/access-bridge-explorer/internal/inspect"
	"github.com/chrishoke/access-bridge-explorer/internal/model"
	"github.com/chrishoke/access-bridge-explorer/internal/output"
)

// toYAMLResult serializes v to YAML for an MCP text response.
func toYAMLResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	jvm := IntParam(params, "jvm", 0)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	windows, err := model.Windows(s.provider)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if jvm != 0 {
		var filtered []model.Window
		for _, w := range windows {
			if w.JvmID == jvm {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}
	if windows == nil {
		windows = []model.Window{}
	}

	return toYAMLResult(output.WindowsResult{
		TS:      time.Now().Unix(),
		Windows: windows,
	})
}

func (s *Server) handleTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	jvm := IntParam(params, "jvm", 0)
	window := StringParam(params, "window", "")
	depth := IntParam(params, "depth", 0)
	roles := StringParam(params, "roles", "")
	text := StringParam(params, "text", "")
	flat := BoolParam(params, "flat", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	nodes, err := s.cache.Snapshot(s.provider, jvm, window, depth)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if roleList := splitRoles(roles); roleList != nil {
		nodes = model.FilterByRole(nodes, roleList)
	}
	if text != "" {
		nodes = model.FilterByText(nodes, text)
	}
	if nodes == nil {
		nodes = []model.Node{}
	}

	ts := time.Now().Unix()
	if flat {
		return toYAMLResult(output.TreeFlatResult{
			Jvm:   jvm,
			Title: window,
			TS:    ts,
			Nodes: model.Flatten(nodes),
		})
	}
	return toYAMLResult(output.TreeResult{
		Jvm:   jvm,
		Title: window,
		TS:    ts,
		Nodes: nodes,
	})
}

func (s *Server) handleProps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	jvm := IntParam(params, "jvm", 0)
	window := StringParam(params, "window", "")
	pathStr := StringParam(params, "path", "")
	optionsStr := StringParam(params, "options", "")

	opts, err := bridge.ParsePropertyOptionList(optionsStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := bridge.ParseChildPath(pathStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	win, err := bridge.FindWindow(s.provider, jvm, window)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	node, err := bridge.DescendChildPath(win, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer node.Dispose()

	props, err := node.Properties(opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toYAMLResult(output.PropsResult{
		Path:  pathStr,
		TS:    time.Now().Unix(),
		Props: props,
	})
}

// watchMaxDuration caps how long a single watch call may block the
// provider; MCP clients time out well before a minute.
const watchMaxDuration = 60

func (s *Server) handleWatch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	eventsStr := StringParam(params, "events", "all")
	durationSec := IntParam(params, "duration", 5)
	if durationSec <= 0 {
		durationSec = 5
	}
	if durationSec > watchMaxDuration {
		durationSec = watchMaxDuration
	}

	kinds, err := bridge.ParseEventKindList(eventsStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	var mu sync.Mutex
	var rows []output.WatchEvent
	c := inspect.New(inspect.Config{
		Provider:       s.provider,
		SharedProvider: true,
		OnLogEntry: func(e inspect.LogEntry) {
			mu.Lock()
			rows = append(rows, output.WatchEvent{
				Seq:   e.Seq,
				TS:    e.Time.Unix(),
				Text:  e.Text,
				Error: e.IsError,
			})
			mu.Unlock()
		},
	})
	if err := c.Initialize(); err != nil {
		c.Dispose()
		return mcp.NewToolResultError(fmt.Sprintf("initial tree read failed: %v", err)), nil
	}
	for _, k := range kinds {
		if err := c.SetEventEnabled(k, true); err != nil {
			c.Dispose()
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	time.Sleep(time.Duration(durationSec) * time.Second)

	// Dispose unsubscribes and drains in-flight events; the shared
	// provider stays up for the next tool call.
	c.Dispose()
	mu.Lock()
	collected := rows
	mu.Unlock()

	return toYAMLResult(struct {
		TS     int64               `yaml:"ts"`
		Events []output.WatchEvent `yaml:"events"`
	}{
		TS:     time.Now().Unix(),
		Events: collected,
	})
}

// splitRoles splits a comma-separated role list.
func splitRoles(s string) []string {
	if s == "" {
		return nil
	}
	var roles []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
