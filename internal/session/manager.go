// internal/session/manager.go
//
// The authoritative per-room state machine. Owns the roomId → Room registry
// and sequences two players through ready-up, synchronized board delivery,
// independent move validation, and win/reset transitions.
//
// Model:
//   - Every operation is a total transition: it either mutates state and
//     emits events, or emits a single failure event to the caller and leaves
//     state untouched.
//   - One mutex serializes all transitions, so they are atomic with respect
//     to each other and the registry needs no finer locking.
//   - The only asynchronous element is the start countdown: a scheduled,
//     cancellable delivery guarded by a per-room generation counter. A fire
//     whose counter no longer matches (room reset, destroyed, or a member
//     gone) is dropped, never applied.
//
// User errors (unknown room, full room, bad placement) go to the requester
// only and never touch other players. Board generation failures fail closed:
// the room stays unstarted and both members get a retryable error event.

package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ItamarSasson/queens-game-backend/internal/puzzle"
)

// DefaultCountdown is the delay between gameCountdown and gameStart.
const DefaultCountdown = 3 * time.Second

// BoardSource produces solvable boards. *puzzle.Factory is the production
// implementation; tests substitute fixed or failing sources.
type BoardSource interface {
	CreateBoard() (*puzzle.Board, error)
}

// RoundRecorder receives finished rounds. Recording is best effort: a
// recorder error is logged and otherwise ignored.
type RoundRecorder interface {
	RecordWin(ctx context.Context, roomID, winnerID, winnerName string, duration time.Duration) error
}

// Config tunes a Manager. Zero values fall back to defaults.
type Config struct {
	Countdown time.Duration // delay before gameStart; DefaultCountdown if 0
	NewRoomID func() string // room id source; random UUID if nil
	History   RoundRecorder // optional round sink
}

// Manager owns all rooms for the process lifetime.
type Manager struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	relay  Relay
	boards BoardSource
	cfg    Config
}

// NewManager wires a Manager to its relay and board source.
func NewManager(relay Relay, boards BoardSource, cfg Config) *Manager {
	if cfg.Countdown == 0 {
		cfg.Countdown = DefaultCountdown
	}
	if cfg.NewRoomID == nil {
		cfg.NewRoomID = uuid.NewString
	}
	return &Manager{
		rooms:  make(map[string]*Room),
		relay:  relay,
		boards: boards,
		cfg:    cfg,
	}
}

// ------------------------------ operations ----------------------------------

// CreateRoom opens a new room with the caller as its only member and tells
// the caller about it.
func (m *Manager) CreateRoom(callerID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := newRoom(m.cfg.NewRoomID(), newPlayer(callerID, name))
	m.rooms[room.ID] = room

	m.emit(EvGameCreated, []string{callerID}, GameCreatedPayload{
		RoomID:     room.ID,
		PlayerID:   callerID,
		PlayerName: name,
	})
}

// JoinRoom adds the caller to an existing room with a free seat.
func (m *Manager) JoinRoom(callerID, roomID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.roomOrError(callerID, roomID)
	if !ok {
		return
	}
	if room.isFull() {
		m.emitError(callerID, "room is full")
		return
	}

	joiner := newPlayer(callerID, name)
	var opponent *PlayerInfo
	if len(room.Players) > 0 {
		other := room.Players[0]
		opponent = &PlayerInfo{PlayerID: other.ID, PlayerName: other.Name}
	}
	room.Players = append(room.Players, joiner)

	m.emit(EvGameJoined, []string{callerID}, GameJoinedPayload{
		RoomID:     room.ID,
		PlayerID:   callerID,
		PlayerName: name,
		Opponent:   opponent,
	})
	m.emit(EvPlayerJoined, room.memberIDs(callerID), PlayerInfo{
		PlayerID:   callerID,
		PlayerName: name,
	})
}

// SetReady flips the caller's ready flag. When that makes both members
// ready in an unstarted room, a board is produced, the room is marked
// started, the countdown is announced, and delivery of the board is
// scheduled for one countdown later.
func (m *Manager) SetReady(callerID, roomID string, ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.roomOrError(callerID, roomID)
	if !ok {
		return
	}
	player := room.player(callerID)
	if player == nil {
		m.emitError(callerID, "not a member of this room")
		return
	}

	player.Ready = ready
	m.emit(EvPlayerReadyChanged, room.memberIDs(""), ReadyChangedPayload{
		PlayerID: callerID,
		Ready:    ready,
	})

	if room.Started || !room.allReady() {
		return
	}

	board, err := m.boards.CreateBoard()
	if err != nil {
		// Fail closed: the room stays unstarted and both members may
		// simply ready up again.
		log.Error().Err(err).Str("roomId", room.ID).Msg("board generation failed")
		m.emit(EvError, room.memberIDs(""), ErrorPayload{Message: "could not generate a board, please try again"})
		return
	}

	room.Board = board
	room.Started = true
	room.StartedAt = time.Now()
	m.emit(EvGameCountdown, room.memberIDs(""), nil)

	token := room.round
	time.AfterFunc(m.cfg.Countdown, func() {
		m.deliverStart(roomID, token)
	})
}

// deliverStart is the scheduled end of the countdown. It re-checks the room
// under the lock and drops the delivery if the round it was scheduled for is
// no longer the current one.
func (m *Manager) deliverStart(roomID string, token uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.rooms[roomID]
	if room == nil || room.round != token || !room.Started || !room.isFull() {
		return
	}
	m.emit(EvGameStart, room.memberIDs(""), GameStartPayload{
		Board: BoardPayload{Regions: room.Board.Regions},
	})
}

// PlaceMarker validates and applies one queen placement for the caller. The
// caller's eighth valid queen wins the round and resets the room.
func (m *Manager) PlaceMarker(callerID, roomID string, row, col int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, player, ok := m.startedRoomMember(callerID, roomID)
	if !ok {
		return
	}

	if err := puzzle.ValidatePlacement(room.Board, row, col, player.Markers); err != nil {
		m.emit(EvInvalidMove, []string{callerID}, ErrorPayload{Message: err.Error()})
		return
	}

	player.Markers = append(player.Markers, puzzle.Cell{Row: row, Col: col})
	m.emit(EvQueenPlaced, room.memberIDs(""), CellPayload{
		PlayerID: callerID,
		Row:      row,
		Col:      col,
	})

	if len(player.Markers) < puzzle.GridSize {
		return
	}

	m.emit(EvGameWon, room.memberIDs(""), GameWonPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
	if m.cfg.History != nil {
		duration := time.Since(room.StartedAt)
		if err := m.cfg.History.RecordWin(context.Background(), room.ID, player.ID, player.Name, duration); err != nil {
			log.Warn().Err(err).Str("roomId", room.ID).Msg("record round")
		}
	}
	room.resetRound()
}

// ToggleFlag toggles the caller's advisory flag on a cell. A cell holding
// the caller's own queen cannot be flagged.
func (m *Manager) ToggleFlag(callerID, roomID string, row, col int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, player, ok := m.startedRoomMember(callerID, roomID)
	if !ok {
		return
	}
	if !puzzle.InBounds(row, col) {
		m.emit(EvInvalidMove, []string{callerID}, ErrorPayload{Message: puzzle.ErrOutOfBounds.Error()})
		return
	}

	cell := puzzle.Cell{Row: row, Col: col}
	if player.hasMarker(cell) {
		m.emit(EvInvalidMove, []string{callerID}, ErrorPayload{Message: "cell already holds your queen"})
		return
	}

	name := EvCellMarked
	if player.Flags[cell] {
		delete(player.Flags, cell)
		name = EvCellUnmarked
	} else {
		player.Flags[cell] = true
	}
	m.emit(name, room.memberIDs(""), CellPayload{
		PlayerID: callerID,
		Row:      row,
		Col:      col,
	})
}

// Restart resets the room's round state without requiring a win.
func (m *Manager) Restart(callerID, roomID string) {
	m.resetByRequest(callerID, roomID, EvGameRestarted)
}

// NewPuzzle performs the same reset as Restart; the next ready-up produces a
// fresh board either way.
func (m *Manager) NewPuzzle(callerID, roomID string) {
	m.resetByRequest(callerID, roomID, EvNewPuzzle)
}

func (m *Manager) resetByRequest(callerID, roomID, eventName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.roomOrError(callerID, roomID)
	if !ok {
		return
	}
	room.resetRound()
	m.emit(eventName, room.memberIDs(""), nil)
}

// Disconnect removes the caller from every room it belongs to. Emptied rooms
// are destroyed; a room that keeps a member is reset (its round cannot
// continue one-sided) and told who left. Idempotent for unknown ids.
func (m *Manager) Disconnect(callerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, room := range m.rooms {
		player := room.player(callerID)
		if player == nil {
			continue
		}

		remaining := room.Players[:0]
		for _, p := range room.Players {
			if p.ID != callerID {
				remaining = append(remaining, p)
			}
		}
		room.Players = remaining

		if len(room.Players) == 0 {
			delete(m.rooms, id)
			continue
		}
		room.resetRound()
		m.emit(EvPlayerDisconnected, room.memberIDs(""), PlayerInfo{
			PlayerID:   player.ID,
			PlayerName: player.Name,
		})
	}
}

// ------------------------------ snapshots -----------------------------------

// PlayerSnapshot is a read-only view of a player for the HTTP surface.
type PlayerSnapshot struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Ready      bool   `json:"ready"`
	Markers    int    `json:"markers"`
	Flags      int    `json:"flags"`
}

// RoomSnapshot is a read-only view of a room. It never includes board
// contents.
type RoomSnapshot struct {
	RoomID  string           `json:"roomId"`
	Started bool             `json:"started"`
	Players []PlayerSnapshot `json:"players"`
}

// Snapshot returns a copy of a room's observable state.
func (m *Manager) Snapshot(roomID string) (RoomSnapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.rooms[roomID]
	if room == nil {
		return RoomSnapshot{}, false
	}
	snap := RoomSnapshot{RoomID: room.ID, Started: room.Started}
	for _, p := range room.Players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Ready:      p.Ready,
			Markers:    len(p.Markers),
			Flags:      len(p.Flags),
		})
	}
	return snap, true
}

// RoomCount reports how many rooms are live.
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rooms)
}

// ------------------------------ helpers -------------------------------------

// roomOrError looks up a room, reporting an error event to the caller when
// it does not exist.
func (m *Manager) roomOrError(callerID, roomID string) (*Room, bool) {
	room := m.rooms[roomID]
	if room == nil {
		m.emitError(callerID, "room not found")
		return nil, false
	}
	return room, true
}

// startedRoomMember resolves the room and the caller's membership for
// in-round operations.
func (m *Manager) startedRoomMember(callerID, roomID string) (*Room, *Player, bool) {
	room, ok := m.roomOrError(callerID, roomID)
	if !ok {
		return nil, nil, false
	}
	if !room.Started {
		m.emitError(callerID, "game has not started")
		return nil, nil, false
	}
	player := room.player(callerID)
	if player == nil {
		m.emitError(callerID, "not a member of this room")
		return nil, nil, false
	}
	return room, player, true
}

func (m *Manager) emit(name string, to []string, payload any) {
	if len(to) == 0 {
		return
	}
	m.relay.Deliver(Event{Name: name, To: to, Payload: payload})
}

func (m *Manager) emitError(callerID, message string) {
	m.emit(EvError, []string{callerID}, ErrorPayload{Message: message})
}
