package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/1broseidon/seamless/internal/ipc"
	"github.com/1broseidon/seamless/internal/logger"
)

const (
	ServerName    = "seamless"
	ServerVersion = "0.1.0"
)

// DaemonClient is the daemon API the tools call. *ipc.Client satisfies it.
type DaemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	GetRects() (*ipc.RectsData, error)
	Rebuild() error
}

// Server exposes the tracking daemon as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    DaemonClient
	log       zerolog.Logger
}

// NewServer creates an MCP server backed by the given daemon client.
func NewServer(client DaemonClient) *Server {
	s := &Server{
		daemon: client,
		log:    logger.WithComponent("mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info().Msg("MCP server starting on stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "seamless_status",
		Description: "Report whether the seamless tracking daemon is running, how many top-level windows it tracks and how many visible rectangles it currently publishes. Set include_windows to list each tracked window.",
	}, s.handleStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "seamless_rects",
		Description: "Return the visible screen rectangles of all tracked top-level windows in absolute coordinates (left, top, right, bottom). The list is the latest published snapshot and carries its version.",
	}, s.handleRects)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "seamless_rebuild",
		Description: "Ask the daemon to drop its window registry and re-enumerate every top-level window. The refreshed rectangles are published asynchronously.",
	}, s.handleRebuild)
}
