package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Spyabo/Zobbo/internal/api"
	"github.com/Spyabo/Zobbo/internal/protocol"
)

// ServerMessage wraps an inbound protocol message for tea.Msg.
type ServerMessage struct {
	Msg protocol.Message
}

// RoomCreatedMsg reports a successful create-room action.
type RoomCreatedMsg struct {
	Created *api.CreatedRoom
}

// RoomJoinedMsg reports a successful join, with the connection open.
type RoomJoinedMsg struct{}

// ActionFailedMsg reports a failed user action.
type ActionFailedMsg struct {
	Err error
}

// ConnClosedMsg reports that the connection dropped for good.
type ConnClosedMsg struct{}

// ReconnectingMsg reports an in-progress redial attempt.
type ReconnectingMsg struct {
	Attempt     int
	MaxAttempts int
}

// ReconnectedMsg reports a successful redial.
type ReconnectedMsg struct{}

// noticeExpiredMsg clears a transient notice once its timer fires.
type noticeExpiredMsg struct {
	id int
}

// waitForEvent relays one transport event into the update loop. Update
// re-arms it after every delivery.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}
