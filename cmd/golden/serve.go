package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/tsawler/golden/tool"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the compare_documents tool over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.WithField("version", a.version).Info("mcp server listening on stdio")
			return tool.NewServer(a.version).Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
