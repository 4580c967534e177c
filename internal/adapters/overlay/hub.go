package overlay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

const (
	MessageRefresh = "refresh"
	MessageSelect  = "select"

	sendBufferSize = 16
)

// Message is the envelope pushed to every overlay client
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// SelectPayload names the facility the overlay should show
type SelectPayload struct {
	FacilityID  string `json:"facility_id"`
	DisplayName string `json:"display_name"`
}

// PayloadProvider builds the refresh payload, usually the current facility views
type PayloadProvider func(ctx context.Context) (interface{}, error)

// client is one connected overlay
type client struct {
	send chan []byte
}

// Hub fans refresh and select notifications out to connected overlays.
// It implements construction.RefreshNotifier.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	payload PayloadProvider
	logger  logging.Logger
}

var _ construction.RefreshNotifier = (*Hub)(nil)

// NewHub creates a hub; call Run to start delivering messages
func NewHub(payload PayloadProvider, logger logging.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, sendBufferSize),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		payload:    payload,
		logger:     logging.OrNoOp(logger),
	}
}

// Run is the hub's event loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.logger.Log(logging.LevelDebug, "Overlay client connected", map[string]interface{}{
				"clients": len(h.clients),
			})

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow client; drop it rather than stall the tracker
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Refresh implements construction.RefreshNotifier
func (h *Hub) Refresh(ctx context.Context) {
	h.publish(h.refreshMessage(ctx))
}

// Select implements construction.RefreshNotifier
func (h *Hub) Select(ctx context.Context, id construction.FacilityID) {
	h.publish(Message{
		Type:    MessageSelect,
		Payload: SelectPayload{FacilityID: id.String(), DisplayName: id.DisplayName()},
	})
}

func (h *Hub) refreshMessage(ctx context.Context) Message {
	msg := Message{Type: MessageRefresh}
	if h.payload == nil {
		return msg
	}
	payload, err := h.payload(ctx)
	if err != nil {
		h.logger.Log(logging.LevelWarn, "Failed to build overlay payload", map[string]interface{}{
			"error": err.Error(),
		})
		return msg
	}
	msg.Payload = payload
	return msg
}

func (h *Hub) encode(msg Message) ([]byte, bool) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Log(logging.LevelError, "Failed to encode overlay message", map[string]interface{}{
			"type":  msg.Type,
			"error": err.Error(),
		})
		return nil, false
	}
	return data, true
}

func (h *Hub) publish(msg Message) {
	data, ok := h.encode(msg)
	if !ok {
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	case <-time.After(time.Second):
		h.logger.Log(logging.LevelWarn, "Overlay hub busy, dropping message", map[string]interface{}{
			"type": msg.Type,
		})
	}
}
