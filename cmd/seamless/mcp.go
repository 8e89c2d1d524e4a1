package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/seamless/internal/logger"
	"github.com/1broseidon/seamless/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol integration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients; the
tools forward to a running "seamless daemon" over its unix socket.`,
		Example: "  seamless mcp serve",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			// Tools report the daemon error per call; this is only a hint
			// for whoever reads the client's stderr log.
			if err := client.Ping(); err != nil {
				log := logger.WithComponent("mcp")
				log.Warn().Err(err).Msg("seamless daemon not reachable yet")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mcp.NewServer(client).Run(ctx)
		},
	})
	return cmd
}
