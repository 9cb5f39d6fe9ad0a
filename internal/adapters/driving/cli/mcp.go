package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/driftline-labs/lakesearch/internal/adapters/driven/config/file"
	"github.com/driftline-labs/lakesearch/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server, exposing catalog search to
AI assistants as the catalog_search and backend_status tools.

The default transport is stdio (JSON-RPC on stdin/stdout). Pass --port,
or set mcp.port in the config file, to serve over HTTP instead, which
enables testing with the MCP Inspector and remote access.

Examples:
  # Stdio mode (default)
  lakesearch mcp serve

  # HTTP mode
  lakesearch mcp serve --port 8080

Assistant configuration (e.g. claude_desktop_config.json):
  {
    "mcpServers": {
      "lakesearch": {
        "command": "/path/to/lakesearch",
        "args": ["mcp", "serve"]
      }
    }
  }`,
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
	if !cmd.Flags().Changed("port") && configStore != nil {
		port = configStore.GetInt(configfile.KeyMCPPort)
	}

	ports := &mcp.Ports{
		Search:  searchService,
		Backend: backendService,
		History: historyService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
