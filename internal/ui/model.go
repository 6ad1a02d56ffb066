// Package ui renders the client's four screens with bubbletea. All session
// mutation funnels through the update loop: user input and transport events
// arrive as discrete tea messages and each handler runs to completion before
// the next is dispatched.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Spyabo/Zobbo/internal/api"
	"github.com/Spyabo/Zobbo/internal/config"
	"github.com/Spyabo/Zobbo/internal/protocol"
	"github.com/Spyabo/Zobbo/internal/session"
	"github.com/Spyabo/Zobbo/internal/transport"
)

// Model drives the whole client UI. The screen shown is always
// sess.CurrentView(); the model itself keeps no memory of past screens.
type Model struct {
	cfg    *config.Config
	sess   *session.Session
	events chan tea.Msg

	nameInput textinput.Model
	roomInput textinput.Model
	roomFocus bool // landing: which input has focus

	notice   string
	noticeID int
	status   string // persistent connection status line

	width  int
	height int
}

// New builds the model, the session it owns and the transport dialer wired
// into the event channel.
func New(cfg *config.Config) Model {
	events := make(chan tea.Msg, 64)

	dial := func(roomID, token string) (session.Conn, error) {
		c, err := transport.New(cfg.ServerURL, roomID, token, transport.Options{
			Keepalive:            cfg.Connection.KeepaliveInterval(),
			ReconnectMaxAttempts: cfg.Connection.ReconnectMaxAttempts,
			ReconnectBaseDelay:   cfg.Connection.ReconnectBaseDelay(),
		})
		if err != nil {
			return nil, err
		}
		c.OnMessage = func(msg protocol.Message) {
			events <- ServerMessage{Msg: msg}
		}
		c.OnClose = func() {
			events <- ConnClosedMsg{}
		}
		c.OnReconnecting = func(attempt, maxAttempts int) {
			events <- ReconnectingMsg{Attempt: attempt, MaxAttempts: maxAttempts}
		}
		c.OnReconnect = func() {
			events <- ReconnectedMsg{}
		}
		if err := c.Connect(); err != nil {
			return nil, err
		}
		return c, nil
	}

	sess := session.New(origin(cfg.ServerURL), api.New(cfg.ServerURL), dial)

	nameInput := textinput.New()
	nameInput.Placeholder = "your name"
	nameInput.CharLimit = 24
	nameInput.Width = 30
	nameInput.SetValue(cfg.PlayerName)
	nameInput.Focus()

	roomInput := textinput.New()
	roomInput.Placeholder = "room id or invite link"
	roomInput.CharLimit = 120
	roomInput.Width = 44

	return Model{
		cfg:       cfg,
		sess:      sess,
		events:    events,
		nameInput: nameInput,
		roomInput: roomInput,
	}
}

// Session exposes the session for startup wiring (room reference from the
// command line) and for tests.
func (m Model) Session() *session.Session { return m.sess }

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

// createRoomCmd issues the single create request off the update loop.
func (m Model) createRoomCmd() tea.Cmd {
	name := m.nameInput.Value()
	return func() tea.Msg {
		created, err := m.sess.CreateRoom(context.Background(), name)
		if err != nil {
			return ActionFailedMsg{Err: err}
		}
		return RoomCreatedMsg{Created: created}
	}
}

// joinRoomCmd issues the single join request and opens the connection.
func (m Model) joinRoomCmd() tea.Cmd {
	name := m.nameInput.Value()
	return func() tea.Msg {
		if err := m.sess.JoinRoom(context.Background(), name); err != nil {
			return ActionFailedMsg{Err: err}
		}
		return RoomJoinedMsg{}
	}
}

func origin(serverURL string) string {
	for len(serverURL) > 0 && serverURL[len(serverURL)-1] == '/' {
		serverURL = serverURL[:len(serverURL)-1]
	}
	return serverURL
}
