package eventhub

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// WebSocketClient delivers complaint events over a WebSocket connection. The
// stream is one-way; the read pump exists to process control frames and to
// notice the peer going away.
type WebSocketClient struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan models.ComplaintEvent
	log  *logging.Logger

	closeOnce sync.Once
}

// NewWebSocketClient wraps an upgraded connection.
func NewWebSocketClient(id string, conn *websocket.Conn, hub *Hub, log *logging.Logger) *WebSocketClient {
	return &WebSocketClient{
		id:   id,
		conn: conn,
		hub:  hub,
		send: make(chan models.ComplaintEvent, sendBuffer),
		log:  log,
	}
}

func (c *WebSocketClient) ID() string                                { return c.id }
func (c *WebSocketClient) SendChannel() chan<- models.ComplaintEvent { return c.send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close stops the write pump by closing the send channel.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.UnregisterCh <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Incoming frames are discarded; the event stream has no inbound
		// messages.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket read", "id", c.id, "error", err)
			}
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				c.log.Debug("websocket write", "id", c.id, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
