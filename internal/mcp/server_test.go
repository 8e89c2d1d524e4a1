package mcp

import (
	"context"
	"errors"
	"sort"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/seamless/internal/daemon"
	"github.com/1broseidon/seamless/internal/ipc"
	"github.com/1broseidon/seamless/internal/platform"
)

type stubClient struct {
	status   *ipc.StatusData
	rects    *ipc.RectsData
	err      error
	rebuilds int
}

func (c *stubClient) GetStatus() (*ipc.StatusData, error) { return c.status, c.err }
func (c *stubClient) GetRects() (*ipc.RectsData, error)   { return c.rects, c.err }
func (c *stubClient) Rebuild() error {
	c.rebuilds++
	return c.err
}

func TestHandleStatus(t *testing.T) {
	client := &stubClient{status: &ipc.StatusData{
		InstanceID:  "inst",
		Tracking:    true,
		WindowCount: 1,
		RectCount:   2,
		Windows:     []daemon.WindowSummary{{ID: 7}},
	}}
	s := NewServer(client)

	_, out, err := s.handleStatus(context.Background(), nil, StatusInput{})
	if err != nil {
		t.Fatalf("handleStatus: %v", err)
	}
	if out.InstanceID != "inst" || !out.Tracking || out.RectCount != 2 {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Windows != nil {
		t.Fatalf("expected windows to be omitted by default")
	}

	_, out, err = s.handleStatus(context.Background(), nil, StatusInput{IncludeWindows: true})
	if err != nil {
		t.Fatalf("handleStatus: %v", err)
	}
	if len(out.Windows) != 1 || out.Windows[0].ID != 7 {
		t.Fatalf("expected windows to be included, got %+v", out.Windows)
	}
}

func TestHandleRects(t *testing.T) {
	rects := []platform.Extent{
		{Left: 10, Top: 20, Right: 50, Bottom: 70},
		{Left: 50, Top: 20, Right: 110, Bottom: 70},
	}
	s := NewServer(&stubClient{rects: &ipc.RectsData{Version: 3, Rects: rects}})

	tests := []struct {
		name      string
		limit     int
		wantLen   int
		truncated bool
		wantErr   bool
	}{
		{name: "all", limit: 0, wantLen: 2},
		{name: "limit above total", limit: 5, wantLen: 2},
		{name: "truncated", limit: 1, wantLen: 1, truncated: true},
		{name: "negative", limit: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.handleRects(context.Background(), nil, RectsInput{Limit: tt.limit})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("handleRects: %v", err)
			}
			if len(out.Rects) != tt.wantLen || out.Truncated != tt.truncated || out.Total != 2 || out.Version != 3 {
				t.Fatalf("unexpected output %+v", out)
			}
		})
	}
}

func TestHandleRects_EmptyListIsNotNull(t *testing.T) {
	s := NewServer(&stubClient{rects: &ipc.RectsData{}})
	_, out, err := s.handleRects(context.Background(), nil, RectsInput{})
	if err != nil {
		t.Fatalf("handleRects: %v", err)
	}
	if out.Rects == nil {
		t.Fatalf("expected empty, non-nil rects")
	}
}

func TestHandleRebuild(t *testing.T) {
	client := &stubClient{}
	s := NewServer(client)
	_, out, err := s.handleRebuild(context.Background(), nil, RebuildInput{})
	if err != nil || !out.Requested || client.rebuilds != 1 {
		t.Fatalf("unexpected rebuild result out=%+v err=%v calls=%d", out, err, client.rebuilds)
	}

	client.err = errors.New("daemon error: tracker is not running")
	if _, _, err := s.handleRebuild(context.Background(), nil, RebuildInput{}); err == nil {
		t.Fatalf("expected daemon error to surface")
	}
}

func TestServer_RegistersTools(t *testing.T) {
	ctx := context.Background()
	s := NewServer(&stubClient{})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()
	serverSession, err := s.mcpServer.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"seamless_rebuild", "seamless_rects", "seamless_status"}
	if len(names) != len(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("tools = %v, want %v", names, want)
		}
	}
}
