// internal/ws/client.go
//
// One connected websocket client. The id doubles as the player id for the
// session layer: identity lives and dies with the connection.

package ws

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Client struct {
	ID   string
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes; gorilla allows one writer at a time
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{ID: uuid.NewString(), conn: conn}
}

func (c *Client) SendJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}
