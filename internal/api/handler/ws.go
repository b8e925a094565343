package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"complainthub/backend/internal/eventhub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Single-origin deployment; tighten when serving the UI elsewhere.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeEvents upgrades the connection and streams complaint events to it.
// The stream is public: it carries the same records the list endpoint does.
func (h *Handler) ServeEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := eventhub.NewWebSocketClient(uuid.NewString(), conn, h.Hub, h.log)
	h.Hub.RegisterCh <- client
	client.Run()
}
