package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spyabo/Zobbo/internal/protocol"
)

func lobbyWith(players ...protocol.Player) protocol.Lobby {
	return protocol.Lobby{
		RoomID:  testRoomID,
		Mode:    protocol.BattleMode(3),
		Players: players,
	}
}

func TestApply_WelcomeAdoptsIdentityOnce(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Apply(protocol.Welcome{PlayerID: "first", Lobby: lobbyWith()})
	assert.Equal(t, "first", s.PlayerID())

	// A later welcome, e.g. after a reopened connection, never overrides an
	// identity the client already holds.
	s.Apply(protocol.Welcome{PlayerID: "second", Lobby: lobbyWith()})
	assert.Equal(t, "first", s.PlayerID())
}

func TestApply_WelcomeKeepsJoinIdentity(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.playerID = "from-join"
	s.Apply(protocol.Welcome{PlayerID: "from-welcome", Lobby: lobbyWith()})
	assert.Equal(t, "from-join", s.PlayerID())
}

func TestApply_LobbyReplacedWholesale(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Apply(protocol.LobbyUpdate{Lobby: lobbyWith(protocol.Player{ID: "a", Name: "ada"})})
	require.NotNil(t, s.Lobby())
	require.Len(t, s.Lobby().Players, 1)

	s.Apply(protocol.LobbyUpdate{Lobby: lobbyWith(
		protocol.Player{ID: "a", Name: "ada", Ready: true, Connected: true},
		protocol.Player{ID: "b", Name: "bob", Ready: true, Connected: true},
	)})
	require.Len(t, s.Lobby().Players, 2)
	assert.True(t, s.Lobby().AllReady())
}

func TestApply_GameStart(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Apply(protocol.LobbyUpdate{Lobby: lobbyWith(protocol.Player{ID: "a"})})

	notice := s.Apply(protocol.GameStart{StartingPlayer: "a", Mode: protocol.SuddenDeathMode()})
	assert.NotEmpty(t, notice)
	assert.True(t, s.InGame())
	assert.Nil(t, s.Lobby(), "game start clears the lobby")
	assert.True(t, s.Mode().SuddenDeath)
}

func TestApply_LobbyUpdateAfterGameStartDropped(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Apply(protocol.GameStart{Mode: protocol.BattleMode(3)})

	s.Apply(protocol.LobbyUpdate{Lobby: lobbyWith(protocol.Player{ID: "a"})})
	assert.True(t, s.InGame(), "game state is terminal for a client run")
	assert.Nil(t, s.Lobby())
}

func TestApply_WelcomeAfterGameStartIgnored(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.playerID = "me"
	s.Apply(protocol.GameStart{Mode: protocol.BattleMode(3)})

	s.Apply(protocol.Welcome{PlayerID: "other", Lobby: lobbyWith(protocol.Player{ID: "a"})})
	assert.True(t, s.InGame())
	assert.Nil(t, s.Lobby())
	assert.Equal(t, "me", s.PlayerID())
}

func TestApply_GameUpdate(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Apply(protocol.GameStart{Mode: protocol.BattleMode(3)})

	update := protocol.GameSnapshot{Active: "a", Stage: "await_draw", DeckCount: 40}
	s.Apply(protocol.GameUpdate{Update: update})
	require.NotNil(t, s.Game())
	assert.Equal(t, 40, s.Game().DeckCount)
}

func TestApply_GameUpdateImpliesGameStarted(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Apply(protocol.LobbyUpdate{Lobby: lobbyWith(protocol.Player{ID: "a"})})

	s.Apply(protocol.GameUpdate{Update: protocol.GameSnapshot{Stage: "await_draw"}})
	assert.True(t, s.InGame())
	assert.Nil(t, s.Lobby())
}

func TestApply_GameOver(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.playerID = "me"
	s.Apply(protocol.GameStart{Mode: protocol.BattleMode(3)})

	notice := s.Apply(protocol.GameOver{YourScore: 3, OppScore: 9, Winner: "me"})
	assert.Contains(t, notice, "win")
	require.NotNil(t, s.Result())
	assert.Equal(t, 3, s.Result().YourScore)

	notice = s.Apply(protocol.GameOver{YourScore: 9, OppScore: 3, Winner: "opp"})
	assert.Contains(t, notice, "lose")

	notice = s.Apply(protocol.GameOver{YourScore: 5, OppScore: 5})
	assert.Contains(t, notice, "draw")
}

func TestApply_ServerError(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Apply(protocol.LobbyUpdate{Lobby: lobbyWith(protocol.Player{ID: "a"})})
	before := s.Lobby()

	notice := s.Apply(protocol.ServerError{Message: "Bad message: nope"})
	assert.Equal(t, "Bad message: nope", notice)
	assert.Equal(t, before, s.Lobby(), "errors never mutate state")
	assert.False(t, s.InGame())

	notice = s.Apply(protocol.ServerError{})
	assert.NotEmpty(t, notice, "empty server text gets a generic fallback")
}

func TestApply_PongAndUnknownAreSilent(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	assert.Empty(t, s.Apply(protocol.Pong{}))
	assert.Empty(t, s.Apply(protocol.Unknown{Type: "chat"}))
	assert.Equal(t, ViewLanding, s.CurrentView())
}
