package http_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsMessage struct {
	Kind  string        `json:"kind"`
	State *domain.State `json:"state"`
	Error string        `json:"error"`
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg wsMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestServeWS_DeviceBinding(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	// A device socket applies CONNECT on join; the snapshot comes back as
	// the first broadcast.
	conn := dial(t, srv, "/sessions/live/ws?client=phone&width=375&height=667")
	defer conn.Close()

	msg := readMessage(t, conn)
	require.Equal(t, "snapshot", msg.Kind)
	require.NotNil(t, msg.State)
	assert.Contains(t, msg.State.Clients, domain.ClientID("phone"))
	assert.Equal(t, float64(375), msg.State.Clients["phone"].Size.Width)
}

func TestServeWS_EventRoundTrip(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	conn := dial(t, srv, "/sessions/live/ws?client=phone&width=100&height=100")
	defer conn.Close()
	_ = readMessage(t, conn) // join snapshot

	err := conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"SWIPE","data":{"id":"phone","direction":"RIGHT","position":{"x":95,"y":50}}}`))
	require.NoError(t, err)

	msg := readMessage(t, conn)
	require.Equal(t, "snapshot", msg.Kind)
	assert.Len(t, msg.State.Swipes, 1, "Lone swipe should be buffered in the snapshot")
}

func TestServeWS_ErrorsReportedInline(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t))
	defer srv.Close()

	conn := dial(t, srv, "/sessions/live/ws?client=phone&width=100&height=100")
	defer conn.Close()
	_ = readMessage(t, conn) // join snapshot

	err := conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"SWIPE","data":{"id":"phone","direction":"DIAGONAL","position":{"x":0,"y":0}}}`))
	require.NoError(t, err)

	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Kind)
	assert.Contains(t, msg.Error, "invalid swipe direction")

	// The socket survives the rejected event.
	err = conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"NEXT_STATE"}`))
	require.NoError(t, err)
	msg = readMessage(t, conn)
	assert.Equal(t, "snapshot", msg.Kind)
}

func TestServeWS_ObserverSocket(t *testing.T) {
	handler := newTestHandler(t)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	// Observer without a client binding sees broadcasts triggered by others.
	observer := dial(t, srv, "/sessions/live/ws")
	defer observer.Close()

	device := dial(t, srv, "/sessions/live/ws?client=phone&width=100&height=100")
	defer device.Close()

	msg := readMessage(t, observer)
	require.Equal(t, "snapshot", msg.Kind)
	assert.Contains(t, msg.State.Clients, domain.ClientID("phone"))
}
