package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/projector/internal/adapters/driving/mcp"
	"github.com/custodia-labs/projector/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can project
resources and explore the schema.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead, which serves:
  /mcp      streamable MCP endpoint
  /metrics  Prometheus metrics

Examples:
  # Stdio mode (default)
  projector mcp serve

  # HTTP mode
  projector mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if projectionService == nil || schemaService == nil {
		return errors.New("projection and schema services not configured")
	}

	ports := &mcp.Ports{
		Projection: projectionService,
		Schema:     schemaService,
	}

	var opts []mcp.Option
	if gatherer != nil {
		opts = append(opts, mcp.WithGatherer(gatherer))
	}
	server, err := mcp.NewServer(ports, opts...)
	if err != nil {
		return err
	}

	// Settings are read per request, so a reload needs no restart.
	if configWatcher != nil {
		go func() {
			err := configWatcher.Watch(cmd.Context(), func() {
				logger.Info("configuration reloaded")
			})
			if err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s/mcp\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
