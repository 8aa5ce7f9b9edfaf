// Package cli implements the leantime-mcp command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Running the root command without a
// subcommand starts the HTTP server.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	root := &cobra.Command{
		Use:   "leantime-mcp",
		Short: "Leantime tools over HTTP and the Model Context Protocol",
		Long:  "leantime-mcp exposes Leantime projects, tasks, milestones, users and timesheets as callable tools.",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	root.Version = opts.Version
	root.SetVersionTemplate(fmt.Sprintf("leantime-mcp version %s\n", opts.Version))

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMCPCmd(opts))
	root.AddCommand(newToolsCmd(opts))
	root.AddCommand(newCallCmd(opts))
	root.AddCommand(newBatchCmd(opts))
	return root
}
