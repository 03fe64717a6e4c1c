package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chrishoke/access-bridge-explorer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the inspector as tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the windows,
tree, props, and watch commands as tools. AI agents can inspect Java
applications directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  access-bridge-explorer serve
  access-bridge-explorer serve --transport streamable-http --port 8080
  access-bridge-explorer serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Node tree cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	cfg := server.Config{
		Provider:  provider,
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
	}

	return server.New(cfg).Serve(cfg)
}
