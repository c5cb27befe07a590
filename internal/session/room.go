// internal/session/room.go
//
// Room and Player state. Both are owned by the Manager and only ever touched
// under its lock; nothing here is safe for concurrent use on its own.

package session

import (
	"time"

	"github.com/ItamarSasson/queens-game-backend/internal/puzzle"
)

// MaxPlayers is the hard cap on room membership.
const MaxPlayers = 2

// Player is one side of a room. Markers are placed queens; Flags are the
// advisory "X" annotations with no game-rule effect.
type Player struct {
	ID      string
	Name    string
	Ready   bool
	Markers []puzzle.Cell
	Flags   map[puzzle.Cell]bool
}

func newPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, Flags: make(map[puzzle.Cell]bool)}
}

// hasMarker reports whether the player has a queen on the cell.
func (p *Player) hasMarker(cell puzzle.Cell) bool {
	for _, m := range p.Markers {
		if m == cell {
			return true
		}
	}
	return false
}

// resetRound clears all per-round state, keeping identity.
func (p *Player) resetRound() {
	p.Ready = false
	p.Markers = nil
	p.Flags = make(map[puzzle.Cell]bool)
}

// Room holds at most two players and, while a round is running, the shared
// board. round is a generation counter bumped on every reset; scheduled
// start deliveries carry the value current at scheduling time and are
// dropped when it no longer matches.
type Room struct {
	ID        string
	Players   []*Player
	Started   bool
	Board     *puzzle.Board
	StartedAt time.Time

	round uint64
}

func newRoom(id string, creator *Player) *Room {
	return &Room{ID: id, Players: []*Player{creator}}
}

func (r *Room) isFull() bool { return len(r.Players) >= MaxPlayers }

// player returns the member with the given id, or nil.
func (r *Room) player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// memberIDs returns the ids of all members except skip ("" skips nobody).
func (r *Room) memberIDs(skip string) []string {
	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		if p.ID != skip {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// allReady reports whether the room is full and every member is ready.
func (r *Room) allReady() bool {
	if !r.isFull() {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// resetRound returns the room to the unstarted state: board cleared, every
// player's ready/markers/flags wiped, generation counter bumped so any
// pending scheduled delivery goes stale. The room itself survives for the
// next round.
func (r *Room) resetRound() {
	r.Started = false
	r.Board = nil
	r.StartedAt = time.Time{}
	r.round++
	for _, p := range r.Players {
		p.resetRound()
	}
}
