package session

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/Spyabo/Zobbo/internal/apperrors"
)

// IsRoomID reports whether s is a canonical 36-character room id
// (8-4-4-4-12 hex with hyphens). Nothing else is ever assigned as one.
func IsRoomID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// roomIDFromPath extracts a room id from a URL path such as
// "/11111111-…". Returns "" when no segment is a room id.
func roomIDFromPath(path string) string {
	for seg := range strings.SplitSeq(path, "/") {
		if IsRoomID(seg) {
			return seg
		}
	}
	return ""
}

// SetRoomFromPath resumes a room reference from an address path. A path
// without a room id is a silent no-op; bootstrapping must never surface an
// error.
func (s *Session) SetRoomFromPath(path string) {
	id := roomIDFromPath(path)
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setRoom(id)
}

// SetRoomFromInput accepts either a bare room id or a full invite link. The
// raw string is parsed as a URL first, falling back to treating the trimmed
// string as a bare id. When neither yields a room id the session is left
// untouched and ErrInvalidRoomReference is returned.
func (s *Session) SetRoomFromInput(raw string) error {
	raw = strings.TrimSpace(raw)

	id := ""
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		id = roomIDFromPath(u.Path)
	}
	if id == "" && IsRoomID(raw) {
		id = raw
	}
	if id == "" {
		return apperrors.ErrInvalidRoomReference
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.setRoom(id)
	return nil
}

// InviteLink derives the shareable address for the current room: the server
// origin plus the room id, or the origin alone before a room is set. Pure.
func (s *Session) InviteLink() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.roomID == "" {
		return s.origin
	}
	return s.shareURL
}
