// internal/ws/handler.go
//
// Websocket adapter between clients and the session layer. Thin by design:
// it upgrades connections, translates inbound JSON messages into session
// operations, and fans session events back out to sockets. All game rules
// live behind the Manager.
//
// Wire format, both directions: {"type": "...", "payload": {...}}.

package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ItamarSasson/queens-game-backend/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// inbound is the single envelope clients send. Unused fields stay zero for
// message types that do not carry them.
type inbound struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
	Ready      bool   `json:"ready"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Handler owns the client registry and implements session.Relay.
type Handler struct {
	Manager *session.Manager

	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHandler() *Handler {
	return &Handler{clients: make(map[string]*Client)}
}

// Deliver fans an event out to its addressees. Clients that are gone are
// skipped; write failures are logged and left to the read loop to clean up.
func (h *Handler) Deliver(ev session.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := outbound{Type: ev.Name, Payload: ev.Payload}
	for _, id := range ev.To {
		c, ok := h.clients[id]
		if !ok {
			continue
		}
		if err := c.SendJSON(msg); err != nil {
			log.Warn().Err(err).Str("playerId", id).Str("event", ev.Name).Msg("send event")
		}
	}
}

// Handle upgrades the connection and runs its read loop until the client
// goes away.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	client := newClient(conn)
	h.register(client)
	defer h.drop(client)

	log.Info().Str("playerId", client.ID).Msg("client connected")
	h.readLoop(client)
}

func (h *Handler) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// drop unregisters the client and tells the session layer it is gone.
func (h *Handler) drop(c *Client) {
	h.mu.Lock()
	delete(h.clients, c.ID)
	h.mu.Unlock()

	h.Manager.Disconnect(c.ID)
	log.Info().Str("playerId", c.ID).Msg("client disconnected")
}

func (h *Handler) readLoop(c *Client) {
	for {
		var msg inbound
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		h.dispatch(c, msg)
	}
}

func (h *Handler) dispatch(c *Client, msg inbound) {
	switch msg.Type {
	case "createRoom":
		h.Manager.CreateRoom(c.ID, msg.PlayerName)
	case "joinGame":
		h.Manager.JoinRoom(c.ID, msg.RoomID, msg.PlayerName)
	case "playerReady":
		h.Manager.SetReady(c.ID, msg.RoomID, msg.Ready)
	case "placeQueen":
		h.Manager.PlaceMarker(c.ID, msg.RoomID, msg.Row, msg.Col)
	case "markCell":
		h.Manager.ToggleFlag(c.ID, msg.RoomID, msg.Row, msg.Col)
	case "restartGame":
		h.Manager.Restart(c.ID, msg.RoomID)
	case "newPuzzle":
		h.Manager.NewPuzzle(c.ID, msg.RoomID)
	default:
		_ = c.SendJSON(outbound{
			Type:    session.EvError,
			Payload: session.ErrorPayload{Message: "unknown message type"},
		})
	}
}
