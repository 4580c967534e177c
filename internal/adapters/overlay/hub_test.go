package overlay_test

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

	"github.com/andrescamacho/architect-tracker/internal/adapters/overlay"
	"github.com/andrescamacho/architect-tracker/internal/infrastructure/config"
)

type received struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

func startHub(t *testing.T, payload overlay.PayloadProvider) (*overlay.Hub, string) {
	t.Helper()
	hub := overlay.NewHub(payload, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func readMessage(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_ClientReceivesStateThenSelection(t *testing.T) {
	// Arrange
	hub, url := startHub(t, func(ctx context.Context) (interface{}, error) {
		return map[string]interface{}{"facilities": 2}, nil
	})

	// Act
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Assert: the current state arrives first
	first := readMessage(t, conn)
	assert.Equal(t, overlay.MessageRefresh, first.Type)
	assert.EqualValues(t, 2, first.Payload["facilities"])

	// Act
	hub.Select(context.Background(), "Sol:Alpha Station")

	// Assert
	sel := readMessage(t, conn)
	assert.Equal(t, overlay.MessageSelect, sel.Type)
	assert.Equal(t, "Sol:Alpha Station", sel.Payload["facility_id"])
	assert.Equal(t, "Alpha Station", sel.Payload["display_name"])

	hub.Refresh(context.Background())
	assert.Equal(t, overlay.MessageRefresh, readMessage(t, conn).Type)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	_, url := startHub(t, nil)

	header := http.Header{}
	header.Set("Origin", "https://example.com")
	_, resp, err := websocket.DefaultDialer.Dial(url, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_AcceptsLocalOrigin(t *testing.T) {
	_, url := startHub(t, nil)

	header := http.Header{}
	header.Set("Origin", "http://localhost:8080")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, overlay.MessageRefresh, readMessage(t, conn).Type)
}

func TestNewServer_RequiresLoopbackAddress(t *testing.T) {
	hub := overlay.NewHub(nil, nil)

	_, err := overlay.NewServer(config.OverlayConfig{Enabled: true, Address: "0.0.0.0:8765", Path: "/ws"}, hub, nil)
	assert.Error(t, err)

	_, err = overlay.NewServer(config.OverlayConfig{Enabled: true, Address: "127.0.0.1:8765", Path: "/ws"}, hub, nil)
	assert.NoError(t, err)
}
