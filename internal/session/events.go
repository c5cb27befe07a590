// internal/session/events.go
//
// Outbound event surface of the session layer. The manager never talks to a
// socket: it resolves each event's audience to concrete player ids and hands
// it to a Relay. The transport adapter (internal/ws) is one Relay; tests use
// a recording one.

package session

import "github.com/ItamarSasson/queens-game-backend/internal/puzzle"

// Outbound event names.
const (
	EvGameCreated        = "gameCreated"
	EvGameJoined         = "gameJoined"
	EvPlayerJoined       = "playerJoined"
	EvPlayerReadyChanged = "playerReadyChanged"
	EvGameCountdown      = "gameCountdown"
	EvGameStart          = "gameStart"
	EvInvalidMove        = "invalidMove"
	EvQueenPlaced        = "queenPlaced"
	EvGameWon            = "gameWon"
	EvCellMarked         = "cellMarked"
	EvCellUnmarked       = "cellUnmarked"
	EvGameRestarted      = "gameRestarted"
	EvNewPuzzle          = "newPuzzleRequested"
	EvPlayerDisconnected = "playerDisconnected"
	EvError              = "error"
)

// Event is one outbound message. To lists the player ids it is addressed
// to, already resolved (single caller, whole room, or room minus sender).
type Event struct {
	Name    string
	To      []string
	Payload any
}

// Relay delivers events to connected clients. Deliver is called with the
// manager's lock held, so implementations must not call back into the
// manager.
type Relay interface {
	Deliver(ev Event)
}

// RelayFunc adapts a function to the Relay interface.
type RelayFunc func(Event)

func (f RelayFunc) Deliver(ev Event) { f(ev) }

// ---------------------------- payloads --------------------------------------

// PlayerInfo identifies a player on the wire.
type PlayerInfo struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type GameCreatedPayload struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type GameJoinedPayload struct {
	RoomID     string      `json:"roomId"`
	PlayerID   string      `json:"playerId"`
	PlayerName string      `json:"playerName"`
	Opponent   *PlayerInfo `json:"opponent,omitempty"`
}

type ReadyChangedPayload struct {
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

// BoardPayload is the client-visible slice of a board. The solution is
// deliberately absent: clients get the regions and nothing else.
type BoardPayload struct {
	Regions puzzle.RegionGrid `json:"regions"`
}

type GameStartPayload struct {
	Board BoardPayload `json:"board"`
}

// CellPayload covers queenPlaced, cellMarked and cellUnmarked.
type CellPayload struct {
	PlayerID string `json:"playerId"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type GameWonPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
