package ipc

import (
	"bufio"
	"encoding/json"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the daemon listening on socketPath.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to daemon (is the daemon running?)")
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse response")
	}

	if resp.Status == StatusError {
		return nil, errors.Errorf("daemon error: %s", resp.Error)
	}
	if resp.ID != req.ID {
		return nil, errors.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}

	return &resp, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, errors.Wrap(err, "failed to parse status data")
	}
	return &status, nil
}

// GetRects retrieves the published visible rectangles.
func (c *Client) GetRects() (*RectsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetRects})
	if err != nil {
		return nil, err
	}

	var data RectsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, errors.Wrap(err, "failed to parse rects data")
	}
	return &data, nil
}

// Rebuild asks the daemon to re-enumerate every top-level window.
func (c *Client) Rebuild() error {
	_, err := c.sendRequest(&Request{Command: CommandRebuild})
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
