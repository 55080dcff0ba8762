package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// ProgressEvent is one backend progress update for an in-flight render
type ProgressEvent struct {
	RequestID string `json:"requestId"`
	Stage     string `json:"stage"`
	Percent   int    `json:"percent"`
	Message   string `json:"message,omitempty"`
	Done      bool   `json:"done"`
}

// ProgressCallback receives progress events as they arrive
type ProgressCallback func(ProgressEvent)

// StreamProgress connects to the backend's progress socket for requestID and
// delivers events to callback until the backend reports completion, the
// connection closes, or ctx is cancelled. Cancellation is not an error.
func (c *Client) StreamProgress(ctx context.Context, requestID string, callback ProgressCallback) error {
	wsURL := httpToWS(c.baseURL) + "/v1/progress/" + requestID

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
	}

	headers := http.Header{}
	if c.apiKey != "" {
		headers.Set("Authorization", "Bearer "+c.apiKey)
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("progress connection failed (HTTP %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("progress connection failed: %w", err)
	}
	defer conn.Close()

	eventChan := make(chan ProgressEvent, 16)
	errChan := make(chan error, 1)

	go func() {
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					errChan <- err
				} else {
					errChan <- nil
				}
				return
			}

			var event ProgressEvent
			if err := json.Unmarshal(message, &event); err != nil {
				// Skip malformed frames; the stream keeps going
				continue
			}
			eventChan <- event
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil

		case event := <-eventChan:
			if callback != nil {
				callback(event)
			}
			if event.Done {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}

		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("progress stream error: %w", err)
			}
			return nil
		}
	}
}

func httpToWS(url string) string {
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	default:
		return url
	}
}
