package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Spyabo/Zobbo/internal/session"
)

const noticeDuration = 4 * time.Second

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ServerMessage:
		if notice := m.sess.Apply(msg.Msg); notice != "" {
			return m.withNotice(notice, m.waitForEvent())
		}
		return m, m.waitForEvent()

	case RoomCreatedMsg:
		// Creating does not seat the host; the join flow runs next with the
		// same name, so one intent shares and joins the room.
		return m.withNotice("Room created: "+msg.Created.RoomID, m.joinRoomCmd())

	case RoomJoinedMsg:
		return m.withNotice("Joined the room", nil)

	case ActionFailedMsg:
		return m.withNotice(msg.Err.Error(), nil)

	case ReconnectingMsg:
		m.status = fmt.Sprintf("Connection lost, reconnecting (%d/%d)…", msg.Attempt, msg.MaxAttempts)
		return m, m.waitForEvent()

	case ReconnectedMsg:
		m.status = ""
		return m.withNotice("Reconnected", m.waitForEvent())

	case ConnClosedMsg:
		m.sess.ConnectionLost()
		m.status = "Connection to the room closed"
		return m, m.waitForEvent()

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.sess.CurrentView() {
	case session.ViewLanding:
		return m.handleLandingKey(msg)
	case session.ViewJoinRoom:
		return m.handleJoinKey(msg)
	case session.ViewLobby:
		return m.handleLobbyKey(msg)
	default:
		return m.handleGameKey(msg)
	}
}

// handleLandingKey drives the landing screen: name entry, mode selection and
// either creating a fresh room or adopting a pasted room reference.
func (m Model) handleLandingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		m.roomFocus = !m.roomFocus
		if m.roomFocus {
			m.nameInput.Blur()
			m.roomInput.Focus()
		} else {
			m.roomInput.Blur()
			m.nameInput.Focus()
		}
		return m, textinput.Blink

	case tea.KeyLeft:
		m.adjustRounds(-1)
		return m, nil

	case tea.KeyRight:
		m.adjustRounds(+1)
		return m, nil

	case tea.KeyCtrlG:
		if m.sess.Mode().SuddenDeath {
			m.sess.SetMode("battle", 0)
		} else {
			m.sess.SetMode("sudden", 0)
		}
		return m, nil

	case tea.KeyEnter:
		if m.roomFocus && m.roomInput.Value() != "" {
			if err := m.sess.SetRoomFromInput(m.roomInput.Value()); err != nil {
				return m.withNotice(err.Error(), nil)
			}
			return m, nil // view selector moves us to the join screen
		}
		return m, m.createRoomCmd()
	}

	return m.updateInputs(msg)
}

func (m Model) handleJoinKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m, m.joinRoomCmd()
	}
	if !m.nameInput.Focused() {
		m.roomInput.Blur()
		m.nameInput.Focus()
	}
	return m.updateInputs(msg)
}

func (m Model) handleLobbyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r", "enter":
		// Idempotent: the server decides whether ready was already set.
		m.sess.ReadyUp()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) adjustRounds(delta int) {
	mode := m.sess.Mode()
	if mode.SuddenDeath {
		return
	}
	next := mode.Rounds + delta
	if next < 1 {
		next = 1
	}
	m.sess.SetMode("battle", next)
}

// withNotice shows a transient notice for a few seconds, alongside any other
// command the caller needs scheduled.
func (m Model) withNotice(text string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.notice = text
	m.noticeID++
	id := m.noticeID
	expire := tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
	if cmd == nil {
		return m, expire
	}
	return m, tea.Batch(cmd, expire)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.roomInput, cmd = m.roomInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}
