package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Spyabo/Zobbo/internal/api"
	"github.com/Spyabo/Zobbo/internal/apperrors"
	"github.com/Spyabo/Zobbo/internal/protocol"
)

// CreateRoom asks the server for a fresh room in the selected mode and
// adopts its id. At most one create/join request is in flight at a time; a
// second call while one is outstanding fails with ErrActionInFlight rather
// than racing.
func (s *Session) CreateRoom(ctx context.Context, playerName string) (*api.CreatedRoom, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, s.fail(apperrors.ErrMissingName)
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, apperrors.ErrActionInFlight
	}
	defer s.inFlight.Store(false)

	created, err := s.rooms.CreateRoom(ctx, s.Mode())
	if err != nil {
		return nil, s.fail(err)
	}
	if !IsRoomID(created.RoomID) {
		return nil, s.fail(fmt.Errorf("create room: server returned malformed room id %q", created.RoomID))
	}

	s.mu.Lock()
	s.setRoom(created.RoomID)
	s.lastError = ""
	s.mu.Unlock()
	return created, nil
}

// JoinRoom claims a seat in the current room under the given name, stores
// the issued credential and then unconditionally opens the persistent
// connection. A token without an initiated connection is never observable.
func (s *Session) JoinRoom(ctx context.Context, playerName string) error {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return s.fail(apperrors.ErrMissingName)
	}
	roomID := s.RoomID()
	if roomID == "" {
		return s.fail(apperrors.ErrMissingRoom)
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return apperrors.ErrActionInFlight
	}
	defer s.inFlight.Store(false)

	joined, err := s.rooms.JoinRoom(ctx, roomID, playerName)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.token = joined.Token
	// The join response is the first writer of the player id; a later
	// welcome never overrides it.
	s.playerID = joined.PlayerID
	s.lastError = ""
	s.mu.Unlock()

	conn, err := s.dial(roomID, joined.Token)
	if err != nil {
		return s.fail(fmt.Errorf("connect to room: %w", err))
	}

	s.mu.Lock()
	if s.conn != nil {
		// A previous join's connection and its keepalive must not outlive
		// being superseded.
		s.conn.Close()
	}
	s.conn = conn
	s.mu.Unlock()
	return nil
}

// ReadyUp pushes a best-effort ready frame. A missing or closed connection
// is swallowed; the server is authoritative on whether ready was already
// set, so the caller may repeat this freely.
func (s *Session) ReadyUp() {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return
	}
	if err := conn.SendControl(protocol.TypeReady); err != nil {
		log.Debug().Err(err).Msg("ready frame dropped")
	}
}

// fail records err as the user-facing failure and returns it.
func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
	return err
}
