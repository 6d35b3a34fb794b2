package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(&HubOptions{
		Logger:          logrus.New(),
		CheckOrigin:     func(r *http.Request) bool { return true },
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	})
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame map[string]any
	require.NoError(t, json.Unmarshal(raw, &frame))
	return frame
}

func TestRequestResponsePair(t *testing.T) {
	hub := newTestHub()
	hub.HandleFunc("jobs/list/get-jobs", func(ctx context.Context, data json.RawMessage) (any, error) {
		return []string{"Backend Engineer"}, nil
	})

	srv := httptest.NewServer(hub)
	defer srv.Close()
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(Message{Event: "jobs/list/get-jobs"}))

	frame := readFrame(t, conn)
	require.Equal(t, "jobs/list/get-jobs-response", frame["event"])
	require.Equal(t, true, frame["success"])
	require.Equal(t, []any{"Backend Engineer"}, frame["data"])
}

func TestHandlerErrorSurfacesInResponse(t *testing.T) {
	hub := newTestHub()
	hub.HandleFunc("jobs/create-job", func(ctx context.Context, data json.RawMessage) (any, error) {
		return nil, errors.New("title is required")
	})

	srv := httptest.NewServer(hub)
	defer srv.Close()
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(Message{Event: "jobs/create-job"}))

	frame := readFrame(t, conn)
	require.Equal(t, "jobs/create-job-response", frame["event"])
	require.Equal(t, false, frame["success"])
	require.Equal(t, "title is required", frame["error"])
}

func TestUnknownEventRejected(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(Message{Event: "nope"}))

	frame := readFrame(t, conn)
	require.Equal(t, false, frame["success"])
	require.Equal(t, "unknown event", frame["error"])
}

func TestBroadcastReachesConnections(t *testing.T) {
	hub := newTestHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()
	conn := dial(t, srv)

	require.Eventually(t, func() bool {
		return hub.ConnectionCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast("jobs/job-created", map[string]string{"title": "Backend Engineer"})

	frame := readFrame(t, conn)
	require.Equal(t, "jobs/job-created", frame["event"])
}
