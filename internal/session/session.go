// Package session owns the client's mutable state: room and player identity,
// chosen game mode, the latest lobby and game snapshots, and the connection
// handle. It is the only place other packages may mutate; the UI reads the
// current screen off it through CurrentView.
package session

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Spyabo/Zobbo/internal/api"
	"github.com/Spyabo/Zobbo/internal/protocol"
)

// Conn is the persistent connection as the session sees it: a place to push
// best-effort control frames.
type Conn interface {
	SendControl(t protocol.Type) error
	Close()
}

// RoomService is the REST half of the room server.
type RoomService interface {
	CreateRoom(ctx context.Context, mode protocol.Mode) (*api.CreatedRoom, error)
	JoinRoom(ctx context.Context, roomID, name string) (*api.JoinedRoom, error)
}

// Dialer opens the persistent connection for a joined room.
type Dialer func(roomID, token string) (Conn, error)

// Session is the single state record for one client run. It is created empty
// at startup and lives until the process ends.
//
// Invariants: a token is only ever set alongside a room id, a connection only
// alongside a token, and entering the game clears the lobby snapshot.
type Session struct {
	mu sync.RWMutex

	origin string
	rooms  RoomService
	dial   Dialer

	roomID   string
	shareURL string
	token    string
	playerID string
	mode     protocol.Mode

	lobby  *protocol.Lobby
	game   *protocol.GameSnapshot
	result *protocol.GameOver
	inGame bool

	lastError string

	conn     Conn
	inFlight atomic.Bool
}

// New returns an empty session anchored at the server origin. The mode
// defaults to a battle over the standard number of rounds, matching what the
// server assumes when none is sent.
func New(origin string, rooms RoomService, dial Dialer) *Session {
	return &Session{
		origin: origin,
		rooms:  rooms,
		dial:   dial,
		mode:   protocol.BattleMode(protocol.DefaultBattleRounds),
	}
}

// SetMode selects the room mode for the next created room. "sudden" picks
// sudden death; anything else is a battle, with non-positive round counts
// falling back per BattleMode. Never fails.
func (s *Session) SetMode(kind string, rounds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == "sudden" {
		s.mode = protocol.SuddenDeathMode()
		return
	}
	s.mode = protocol.BattleMode(rounds)
}

// Mode returns the currently selected room mode.
func (s *Session) Mode() protocol.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// RoomID returns the current room id, or "" when none is set.
func (s *Session) RoomID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomID
}

// Token returns the join credential, or "" before a join.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// PlayerID returns this client's identity, or "" before it is known.
func (s *Session) PlayerID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerID
}

// Lobby returns the latest lobby snapshot, or nil.
func (s *Session) Lobby() *protocol.Lobby {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lobby
}

// Game returns the latest in-game snapshot, or nil.
func (s *Session) Game() *protocol.GameSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game
}

// Result returns the final game result once the game is over, or nil.
func (s *Session) Result() *protocol.GameOver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// InGame reports whether the game has started. It never flips back for the
// lifetime of a client run.
func (s *Session) InGame() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inGame
}

// Connected reports whether a connection handle is held.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn != nil
}

// LastError returns the most recent user-facing failure, or "".
func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// ConnectionLost drops the connection handle after the transport has given
// up on it. Identity, token and snapshots stay; the worst outcome is a stuck
// screen awaiting a manual retry.
func (s *Session) ConnectionLost() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = nil
}

// setRoom assigns the room id and refreshes the share address. The caller
// must have validated the id. Idempotent when already on that room.
func (s *Session) setRoom(id string) {
	s.roomID = id
	s.shareURL = s.origin + "/" + id
}
