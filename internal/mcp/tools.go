package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"

	"github.com/1broseidon/seamless/internal/platform"
)

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, args StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, errors.Wrap(err, "seamless_status")
	}

	out := StatusOutput{
		InstanceID:    status.InstanceID,
		Tracking:      status.Tracking,
		WindowCount:   status.WindowCount,
		RectCount:     status.RectCount,
		Version:       status.Version,
		UptimeSeconds: status.UptimeSeconds,
		UpdatedAt:     status.UpdatedAt,
	}
	if args.IncludeWindows {
		out.Windows = status.Windows
	}
	s.log.Debug().Int("windows", out.WindowCount).Int("rects", out.RectCount).Msg("seamless_status")
	return nil, out, nil
}

func (s *Server) handleRects(_ context.Context, _ *mcpsdk.CallToolRequest, args RectsInput) (*mcpsdk.CallToolResult, RectsOutput, error) {
	if args.Limit < 0 {
		return nil, RectsOutput{}, errors.Errorf("limit must be >= 0, got %d", args.Limit)
	}
	data, err := s.daemon.GetRects()
	if err != nil {
		return nil, RectsOutput{}, errors.Wrap(err, "seamless_rects")
	}

	out := RectsOutput{
		Version: data.Version,
		Total:   len(data.Rects),
		Rects:   data.Rects,
	}
	if args.Limit > 0 && len(out.Rects) > args.Limit {
		out.Rects = out.Rects[:args.Limit]
		out.Truncated = true
	}
	if out.Rects == nil {
		out.Rects = []platform.Extent{}
	}
	return nil, out, nil
}

func (s *Server) handleRebuild(_ context.Context, _ *mcpsdk.CallToolRequest, _ RebuildInput) (*mcpsdk.CallToolResult, RebuildOutput, error) {
	if err := s.daemon.Rebuild(); err != nil {
		return nil, RebuildOutput{}, errors.Wrap(err, "seamless_rebuild")
	}
	s.log.Info().Msg("seamless_rebuild requested")
	return nil, RebuildOutput{Requested: true}, nil
}
