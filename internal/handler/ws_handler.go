package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cargobridge/internal/middleware"
	"cargobridge/internal/realtime"
	"cargobridge/internal/service/feed"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// WSHandler upgrades authenticated dashboard connections and bridges them
// to the hub.
type WSHandler struct {
	hub         *realtime.Hub
	feedService feed.Service
	log         *zap.Logger
}

func NewWSHandler(hub *realtime.Hub, feedService feed.Service, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:         hub,
		feedService: feedService,
		log:         logger,
	}
}

// Upgrade gates the websocket route; auth middleware has already run.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals("ws_user_id", middleware.GetCurrentUserID(c))
	return c.Next()
}

func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("ws_user_id").(uuid.UUID)
		if !ok {
			_ = conn.Close()
			return
		}

		client := &realtime.Client{
			UserID: userID,
			Send:   make(chan []byte, sendBufferSize),
		}
		h.hub.AddClient(client)
		defer func() {
			h.hub.RemoveClient(client)
			if !h.hub.HasClients(userID) {
				h.feedService.CloseSession(userID)
			}
		}()

		done := make(chan struct{})
		go h.writePump(conn, client, done)
		h.readPump(conn)
		close(done)
	})
}

// readPump drains incoming frames; the protocol is server-push only, so
// client frames are just liveness.
func (h *WSHandler) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WSHandler) writePump(conn *websocket.Conn, client *realtime.Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case data, ok := <-client.Send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
