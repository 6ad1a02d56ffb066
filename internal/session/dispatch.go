package session

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Spyabo/Zobbo/internal/protocol"
)

// Apply folds one server message into the session and returns transient
// user-facing notice text, or "" when the message is silent. Each case is a
// total function of (session, message); there is no ordering dependency
// between message types beyond game start superseding the lobby view.
func (s *Session) Apply(msg protocol.Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch m := msg.(type) {
	case protocol.Welcome:
		if s.inGame {
			// A welcome can only follow a reopened connection; the game
			// screen is rebuilt from the next game_update, not from stale
			// lobby state.
			log.Debug().Msg("welcome ignored while in game")
			return ""
		}
		if s.playerID == "" {
			s.playerID = m.PlayerID
		}
		lobby := m.Lobby
		s.lobby = &lobby
		return ""

	case protocol.LobbyUpdate:
		if s.inGame {
			log.Debug().Msg("lobby_update dropped after game_start")
			return ""
		}
		lobby := m.Lobby
		s.lobby = &lobby
		return ""

	case protocol.GameStart:
		s.inGame = true
		s.lobby = nil
		s.mode = m.Mode
		return "The game has started: " + m.Mode.String()

	case protocol.GameUpdate:
		update := m.Update
		s.game = &update
		if !s.inGame {
			// A game snapshot is proof the game started; a reopened
			// connection may deliver it before any game_start.
			s.inGame = true
			s.lobby = nil
		}
		return ""

	case protocol.GameOver:
		result := m
		s.result = &result
		switch {
		case m.Winner == "":
			return fmt.Sprintf("Game over: a draw at %d points each", m.YourScore)
		case m.Winner == s.playerID:
			return fmt.Sprintf("Game over: you win %d-%d", m.YourScore, m.OppScore)
		default:
			return fmt.Sprintf("Game over: you lose %d-%d", m.YourScore, m.OppScore)
		}

	case protocol.ServerError:
		if m.Message == "" {
			return "The server reported an error"
		}
		return m.Message

	case protocol.Pong:
		return ""

	default:
		log.Info().Str("type", string(msg.MsgType())).Msg("unrecognized message ignored")
		return ""
	}
}
