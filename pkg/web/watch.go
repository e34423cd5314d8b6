package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Update is one decoded event from /ws/status. Exactly one field is set.
type Update struct {
	Status  *RunStatus
	Summary *RunSummary
}

type wireEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// StatusURL returns the status stream URL for a dashboard at addr
// (host:port).
func StatusURL(addr string) string {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws/status"}
	return u.String()
}

// Watch connects to a dashboard status stream and calls fn for every
// update until ctx is done, the server closes the stream, or fn returns
// false. Watch returns nil after a summary has been received.
func Watch(ctx context.Context, wsURL string, fn func(Update) bool) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	ws, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connect to dashboard: %w", err)
	}
	defer ws.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			ws.Close()
		case <-stop:
		}
	}()

	finished := false
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if finished || ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read status: %w", err)
		}

		up, err := decodeUpdate(data)
		if err != nil {
			return err
		}
		if up.Summary != nil {
			finished = true
		}
		if !fn(up) {
			return nil
		}
	}
}

func decodeUpdate(data []byte) (Update, error) {
	var ev wireEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return Update{}, fmt.Errorf("decode event: %w", err)
	}
	switch ev.Type {
	case "status":
		var st RunStatus
		if err := json.Unmarshal(ev.Data, &st); err != nil {
			return Update{}, fmt.Errorf("decode status: %w", err)
		}
		return Update{Status: &st}, nil
	case "summary":
		var sum RunSummary
		if err := json.Unmarshal(ev.Data, &sum); err != nil {
			return Update{}, fmt.Errorf("decode summary: %w", err)
		}
		return Update{Summary: &sum}, nil
	default:
		return Update{}, fmt.Errorf("unknown event type %q", ev.Type)
	}
}
