package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope is what goes over a websocket to a dashboard client. The kinds
// mirror what the web client used to get from its in-page event bus: a
// "source-changed" nudge to re-pull the feed, plus targeted payloads.
type Envelope struct {
	Kind    string          `json:"kind"`
	Table   string          `json:"table,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	KindSourceChanged = "source-changed"
	KindFeedUpdated   = "feed-updated"
)

// Client is one websocket connection; writes go through the buffered Send
// channel so a slow consumer never blocks the hub.
type Client struct {
	UserID uuid.UUID
	Send   chan []byte
}

// Hub tracks connected sockets per user and delivers envelopes to all of a
// user's connections.
type Hub struct {
	mu            sync.RWMutex
	clientsByUser map[uuid.UUID]map[*Client]struct{}
	log           *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clientsByUser: make(map[uuid.UUID]map[*Client]struct{}),
		log:           logger,
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clientsByUser[c.UserID]; !ok {
		h.clientsByUser[c.UserID] = make(map[*Client]struct{})
	}
	h.clientsByUser[c.UserID][c] = struct{}{}
}

func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clientsByUser[c.UserID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clientsByUser, c.UserID)
		}
	}
}

// HasClients reports whether the user has at least one live socket.
func (h *Hub) HasClients(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clientsByUser[userID]) > 0
}

func (h *Hub) SendToUser(userID uuid.UUID, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("marshal envelope", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clientsByUser[userID] {
		select {
		case c.Send <- data:
		default:
			// slow consumer, drop rather than block the hub
		}
	}
}

func (h *Hub) Broadcast(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("marshal envelope", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.clientsByUser {
		for c := range set {
			select {
			case c.Send <- data:
			default:
			}
		}
	}
}

// HandleEvent lets the hub sit on the change-feed subscriber directly:
// targeted events go to that user, the rest nudge everyone.
func (h *Hub) HandleEvent(evt Event) {
	env := Envelope{Kind: KindSourceChanged, Table: evt.Table, Payload: evt.Payload}
	if evt.UserID != nil {
		h.SendToUser(*evt.UserID, env)
		return
	}
	h.Broadcast(env)
}
