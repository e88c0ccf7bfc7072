package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"idb-monitor/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio (default)",
	Run: func(cmd *cobra.Command, args []string) {
		runMCP(cmd)
	},
}

func runMCP(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The first tool call loads the data, so a slow source does not block the handshake.
	server := mcp.NewServer(cfg, holder)
	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("MCP server stopped")
	}
}
