package commands

import (
	"github.com/spf13/cobra"

	"github.com/souhailaS/apistic/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analysis tools over MCP on stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
analyze, harvest and compare tools. Configure it with APISTIC_*
environment variables, or a .env file in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
