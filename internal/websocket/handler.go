package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer. handle receives
// inbound frames; onClose runs when the connection winds down. Both may
// be nil for push-only connections.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID, handle func(c *Client, data []byte), onClose func(c *Client)) {
	client := &Client{
		Hub:     hub,
		Conn:    c,
		UserID:  userID,
		Send:    make(chan []byte, 256),
		Handle:  handle,
		OnClose: onClose,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
