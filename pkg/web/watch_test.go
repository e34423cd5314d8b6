package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusServer replays events then closes the connection.
func statusServer(t *testing.T, events ...Event) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for _, ev := range events {
			if err := ws.WriteJSON(ev); err != nil {
				return
			}
		}
		ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWatch_ReceivesStatusAndSummary(t *testing.T) {
	srv := statusServer(t,
		Event{Type: "status", Data: RunStatus{Phase: PhaseTracking, Frame: 3, Zone: "a", Counts: map[string]int{"a": 3}}},
		Event{Type: "summary", Data: RunSummary{Result: "center:0, a:3, b:0, c:0"}},
	)

	var got []Update
	err := Watch(context.Background(), wsURL(srv), func(u Update) bool {
		got = append(got, u)
		return true
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].Status)
	assert.Equal(t, 3, got[0].Status.Frame)
	assert.Equal(t, 3, got[0].Status.Counts["a"])

	require.NotNil(t, got[1].Summary)
	assert.Equal(t, "center:0, a:3, b:0, c:0", got[1].Summary.Result)
}

func TestWatch_StopsWhenCallbackDeclines(t *testing.T) {
	srv := statusServer(t,
		Event{Type: "status", Data: RunStatus{Frame: 1}},
		Event{Type: "status", Data: RunStatus{Frame: 2}},
	)

	n := 0
	err := Watch(context.Background(), wsURL(srv), func(Update) bool {
		n++
		return false
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWatch_ConnectError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := Watch(ctx, "ws://127.0.0.1:1/ws/status", func(Update) bool { return true })
	assert.Error(t, err)
}

func TestDecodeUpdate(t *testing.T) {
	_, err := decodeUpdate([]byte(`{"type":"bogus","data":{}}`))
	assert.Error(t, err)
	_, err = decodeUpdate([]byte(`not json`))
	assert.Error(t, err)
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8090/ws/status", StatusURL("localhost:8090"))
}
