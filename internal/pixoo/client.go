package pixoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jwulff/bptrack/internal/render"
)

// DefaultTimeout bounds a single request to the device.
const DefaultTimeout = 5 * time.Second

// Client talks to one Pixoo device.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	logger     *slog.Logger
	picID      int
}

// NewClient creates a client for addr, an IP address with an optional port.
func NewClient(addr string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "80")
	}
	return &Client{
		Endpoint:   fmt.Sprintf("http://%s/post", addr),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger.With("component", "pixoo"),
	}
}

// Push shows frame on the device. The animation counter is reset before the
// first push so the device does not reject a stale picture id.
func (c *Client) Push(ctx context.Context, frame *render.Frame) error {
	if c.picID == 0 {
		if err := c.send(ctx, CmdResetGifID, Command{Command: CmdResetGifID}); err != nil {
			return err
		}
	}
	c.picID++

	if err := c.send(ctx, CmdSendGif, NewFrameCommand(frame, c.picID)); err != nil {
		return err
	}
	c.logger.Debug("frame pushed", "pic_id", c.picID, "bytes", len(frame.Pixels))
	return nil
}

// SetBrightness sets the display brightness (0-100).
func (c *Client) SetBrightness(ctx context.Context, brightness int) error {
	return c.send(ctx, CmdSetBrightness, NewBrightnessCommand(brightness))
}

// IsReachable reports whether the device answers a time query.
func (c *Client) IsReachable(ctx context.Context) bool {
	err := c.send(ctx, CmdGetDeviceTime, Command{Command: CmdGetDeviceTime})
	if err != nil {
		c.logger.Debug("device unreachable", "endpoint", c.Endpoint, "error", err)
	}
	return err == nil
}

func (c *Client) send(ctx context.Context, name string, command any) error {
	data, err := json.Marshal(command)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	if r.ErrorCode != 0 {
		return DeviceError{Command: name, Code: r.ErrorCode}
	}
	return nil
}
