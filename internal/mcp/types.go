package mcp

import (
	"github.com/1broseidon/seamless/internal/daemon"
	"github.com/1broseidon/seamless/internal/platform"
)

// StatusInput is the input for the seamless_status tool.
type StatusInput struct {
	IncludeWindows bool `json:"include_windows,omitempty" jsonschema:"When true, list every tracked top-level window with its geometry"`
}

// StatusOutput is the output for the seamless_status tool.
type StatusOutput struct {
	InstanceID    string                 `json:"instance_id"`
	Tracking      bool                   `json:"tracking"`
	WindowCount   int                    `json:"window_count"`
	RectCount     int                    `json:"rect_count"`
	Version       uint64                 `json:"version"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	UpdatedAt     string                 `json:"updated_at,omitempty"`
	Windows       []daemon.WindowSummary `json:"windows,omitempty"`
}

// RectsInput is the input for the seamless_rects tool.
type RectsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of rectangles to return (default: all)"`
}

// RectsOutput is the output for the seamless_rects tool.
type RectsOutput struct {
	Version   uint64            `json:"version"`
	Total     int               `json:"total"`
	Truncated bool              `json:"truncated,omitempty"`
	Rects     []platform.Extent `json:"rects"`
}

// RebuildInput is the input for the seamless_rebuild tool.
type RebuildInput struct{}

// RebuildOutput is the output for the seamless_rebuild tool.
type RebuildOutput struct {
	Requested bool `json:"requested"`
}
