package commands

import (
	"github.com/spf13/cobra"

	"github.com/souhailaS/apistic"
)

// NewRootCmd builds the apistic command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "apistic",
		Short: "Group the body schemas of an OpenAPI description",
		Long: `apistic extracts the JSON request and response body schemas of an
OpenAPI 3.x or Swagger 2.0 document, groups structurally equivalent schemas
and reports how much of the API reuses the same shapes.`,
		Version:      apistic.Version(),
		SilenceUsage: true,
	}
	root.SetVersionTemplate("apistic v{{.Version}}\n")

	root.AddCommand(newAnalyzeCmd(), newMCPCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			Writef(cmd.OutOrStdout(), "apistic v%s\n%s\n", apistic.Version(), apistic.BuildInfo())
		},
	}
}
