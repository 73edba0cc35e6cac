package websocket

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler upgrades HTTP requests into live note editing sessions
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for live note editing
// @Description Upgrades the HTTP connection to a WebSocket for collaborative editing. The server assigns a session user id and confirms with a connected event; the client then joins note rooms with join_note events.
// @Tags live-notes, websocket
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /ws/live-notes [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: uuid.New().String(),
		rooms:  make(map[string]bool),
		logger: h.logger,
	}
	client.hub.register <- client

	// Confirm the session before any room traffic.
	connected, _ := json.Marshal(&Event{
		Type:   EventConnected,
		UserID: client.userID,
	})
	client.send <- connected

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", client.userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
