package cmd

import (
	"github.com/spf13/cobra"

	"github.com/janus-clew/clew/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the clew MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze repositories and query the growth history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdio clean for the protocol; setup must not print.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
