package overlay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/infrastructure/config"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// upgrader only accepts pages served from the local machine
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkLocalOrigin,
}

func checkLocalOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Host
	if u.Port() == "" {
		host += ":0"
	}
	return config.IsLoopbackAddress(host)
}

// ServeWs upgrades an overlay connection and registers it with the hub.
// The client first receives the current state as a refresh message.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Log(logging.LevelWarn, "Overlay upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	c := &client{send: make(chan []byte, sendBufferSize)}
	if data, ok := h.encode(h.refreshMessage(r.Context())); ok {
		c.send <- data
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go h.writePump(c, conn)
	go h.readPump(c, conn)
}

// readPump drains the connection so close and pong frames are processed.
// Overlays are receive-only; anything they send is discarded.
func (h *Hub) readPump(c *client, conn *websocket.Conn) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = conn.Close()
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Log(logging.LevelDebug, "Overlay connection closed", map[string]interface{}{
					"error": err.Error(),
				})
			}
			return
		}
	}
}

// writePump delivers queued messages and keeps the connection alive
func (h *Hub) writePump(c *client, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Server exposes the hub over HTTP
type Server struct {
	hub    *Hub
	server *http.Server
	logger logging.Logger
}

// NewServer creates the overlay server. The address must be a loopback address.
func NewServer(cfg config.OverlayConfig, hub *Hub, logger logging.Logger) (*Server, error) {
	if !config.IsLoopbackAddress(cfg.Address) {
		return nil, fmt.Errorf("overlay address %s is not a loopback address", cfg.Address)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Path, hub.ServeWs)

	return &Server{
		hub: hub,
		server: &http.Server{
			Addr:              cfg.Address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logging.OrNoOp(logger),
	}, nil
}

// Run serves overlays and runs the hub until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	hubCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hub.Run(hubCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Log(logging.LevelInfo, "Overlay server listening", map[string]interface{}{
			"address": s.server.Addr,
		})
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return s.server.Shutdown(shutdownCtx)
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("overlay server failed: %w", err)
		}
		return nil
	}
}
