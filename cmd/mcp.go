package cmd

import (
	"github.com/huangsam/lifespan/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Lifespan MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents run attention analysis.

Tools:
  analyze_attention - full report for a CSV (path, optional limit and encoding)
  get_event_metrics - metrics and regime of one event (path, event)`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
