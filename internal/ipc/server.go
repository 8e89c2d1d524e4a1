package ipc

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/1broseidon/seamless/internal/daemon"
	"github.com/1broseidon/seamless/internal/logger"
)

// Daemon is what the server needs from the running tracker.
type Daemon interface {
	Snapshot() daemon.Snapshot
	RequestRebuild() bool
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	daemon       Daemon
	log          zerolog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
	conns        sync.WaitGroup
}

// NewServer creates a new IPC server bound to socketPath once started.
func NewServer(socketPath string, d Daemon) *Server {
	return &Server{
		socketPath: socketPath,
		daemon:     d,
		log:        logger.WithComponent("ipc"),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0o700); err != nil {
		return errors.Wrap(err, "failed to create socket directory")
	}
	// Remove existing socket if present
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return errors.Wrap(err, "failed to create IPC socket")
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		listener.Close()
		return errors.Wrap(err, "failed to set socket permissions")
	}

	s.log.Info().Str("socket", s.socketPath).Msg("IPC server listening")

	go s.acceptLoop()
	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.log.Warn().Err(err).Msg("IPC accept error")
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(conn)
		}()
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn().Err(err).Msg("IPC read error")
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.writeResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	resp := s.handleCommand(req)
	resp.ID = req.ID
	s.writeResponse(conn, resp)
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.log.Debug().Str("command", string(req.Command)).Str("id", req.ID).Msg("IPC request")
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetRects:
		return s.handleGetRects()
	case CommandRebuild:
		return s.handleRebuild()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	snap := s.daemon.Snapshot()

	status := StatusData{
		InstanceID:    snap.InstanceID,
		Tracking:      snap.Enabled,
		WindowCount:   len(snap.Windows),
		RectCount:     len(snap.Rects),
		Version:       snap.Version,
		UptimeSeconds: int64(time.Since(snap.StartedAt).Seconds()),
		Windows:       snap.Windows,
	}
	if !snap.UpdatedAt.IsZero() {
		status.UpdatedAt = snap.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}

	return s.okResponse(status)
}

func (s *Server) handleGetRects() *Response {
	snap := s.daemon.Snapshot()
	return s.okResponse(RectsData{Version: snap.Version, Rects: snap.Rects})
}

func (s *Server) handleRebuild() *Response {
	s.log.Info().Msg("IPC: rebuild requested")
	if !s.daemon.RequestRebuild() {
		return NewErrorResponse("tracker is not running")
	}
	return s.okResponse(RebuildData{Requested: true})
}

func (s *Server) okResponse(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) writeResponse(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal response")
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.log.Warn().Err(err).Msg("failed to send response")
	}
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.conns.Wait()
	os.Remove(s.socketPath)
}
