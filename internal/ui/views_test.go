package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spyabo/Zobbo/internal/config"
	"github.com/Spyabo/Zobbo/internal/protocol"
)

const testRoomID = "11111111-1111-1111-1111-111111111111"

func TestLobbyStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lobby *protocol.Lobby
		want  string
	}{
		{"no snapshot yet", nil, "Waiting for an opponent…"},
		{"empty lobby", &protocol.Lobby{}, "Waiting for an opponent…"},
		{
			"one player",
			&protocol.Lobby{Players: []protocol.Player{{ID: "a", Connected: true}}},
			"Waiting for an opponent…",
		},
		{
			"both present, not ready",
			&protocol.Lobby{Players: []protocol.Player{
				{ID: "a", Connected: true},
				{ID: "b", Connected: true},
			}},
			"Opponent found, press r when ready",
		},
		{
			"both ready",
			&protocol.Lobby{Players: []protocol.Player{
				{ID: "a", Connected: true, Ready: true},
				{ID: "b", Connected: true, Ready: true},
			}},
			"Both players ready, starting…",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lobbyStatus(tt.lobby))
		})
	}
}

func TestView_FollowsSession(t *testing.T) {
	t.Parallel()

	m := New(config.Default())
	assert.Contains(t, m.View(), "Name:", "landing screen shows the name prompt")

	m.Session().SetRoomFromPath("/" + testRoomID)
	assert.Contains(t, m.View(), "Room "+testRoomID, "join screen shows the room")
}

func TestUpdate_ServerMessageDrivesLobby(t *testing.T) {
	t.Parallel()

	m := New(config.Default())
	m.Session().SetRoomFromPath("/" + testRoomID)

	lobby := protocol.Lobby{
		RoomID: testRoomID,
		Mode:   protocol.BattleMode(3),
		Players: []protocol.Player{
			{ID: "p1", Name: "ada", Connected: true},
		},
	}
	next, _ := m.Update(ServerMessage{Msg: protocol.LobbyUpdate{Lobby: lobby}})
	model := next.(Model)

	require.NotNil(t, model.Session().Lobby())
	assert.Equal(t, "ada", model.Session().Lobby().Players[0].Name)
}

func TestUpdate_GameStartNotice(t *testing.T) {
	t.Parallel()

	m := New(config.Default())
	next, _ := m.Update(ServerMessage{Msg: protocol.GameStart{Mode: protocol.SuddenDeathMode()}})
	model := next.(Model)

	assert.True(t, model.Session().InGame())
	assert.Contains(t, model.notice, "started")
}

func TestUpdate_WindowSize(t *testing.T) {
	t.Parallel()

	m := New(config.Default())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	model := next.(Model)
	assert.Equal(t, 100, model.width)
}

func TestUpdate_ModeKeys(t *testing.T) {
	t.Parallel()

	m := New(config.Default())
	require.False(t, m.Session().Mode().SuddenDeath)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	model := next.(Model)
	assert.True(t, model.Session().Mode().SuddenDeath)

	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	model = next.(Model)
	mode := model.Session().Mode()
	assert.False(t, mode.SuddenDeath)
	assert.Equal(t, protocol.DefaultBattleRounds, mode.Rounds)

	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model = next.(Model)
	assert.Equal(t, protocol.DefaultBattleRounds+1, model.Session().Mode().Rounds)

	for range 10 {
		next, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
		model = next.(Model)
	}
	assert.Equal(t, 1, model.Session().Mode().Rounds, "rounds never drop below one")
}

func TestUpdate_InvalidRoomInput(t *testing.T) {
	t.Parallel()

	m := New(config.Default())

	// Focus the room input and submit garbage.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	model := next.(Model)
	model.roomInput.SetValue("not a room")
	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = next.(Model)

	assert.Empty(t, model.Session().RoomID())
	assert.NotEmpty(t, model.notice)
}
