package ipc

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/1broseidon/seamless/internal/daemon"
	"github.com/1broseidon/seamless/internal/platform"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus CommandType = "GET_STATUS"
	CommandGetRects  CommandType = "GET_RECTS"
	CommandRebuild   CommandType = "REBUILD"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	InstanceID    string                 `json:"instance_id"`
	Tracking      bool                   `json:"tracking"`
	WindowCount   int                    `json:"window_count"`
	RectCount     int                    `json:"rect_count"`
	Version       uint64                 `json:"version"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	UpdatedAt     string                 `json:"updated_at,omitempty"`
	Windows       []daemon.WindowSummary `json:"windows"`
}

// RectsData represents the data returned by GET_RECTS
type RectsData struct {
	Version uint64            `json:"version"`
	Rects   []platform.Extent `json:"rects"`
}

// RebuildData represents the data returned by REBUILD
type RebuildData struct {
	Requested bool `json:"requested"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal response data")
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(err, "failed to parse request")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
