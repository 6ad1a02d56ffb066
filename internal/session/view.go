package session

// View is one of the four screens a session can be on.
type View int

const (
	ViewLanding View = iota
	ViewJoinRoom
	ViewLobby
	ViewGame
)

func (v View) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewJoinRoom:
		return "join"
	case ViewLobby:
		return "lobby"
	case ViewGame:
		return "game"
	default:
		return "unknown"
	}
}

// CurrentView selects the screen for the current session state. Pure, total
// and deterministic: the four branches are exhaustive and mutually exclusive
// under the session invariants, and no memory of past selections is kept.
func (s *Session) CurrentView() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.roomID == "":
		return ViewLanding
	case s.token == "":
		return ViewJoinRoom
	case s.inGame:
		return ViewGame
	default:
		return ViewLobby
	}
}
