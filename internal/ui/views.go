package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Spyabo/Zobbo/internal/protocol"
	"github.com/Spyabo/Zobbo/internal/session"
)

func (m Model) View() string {
	var body string
	switch m.sess.CurrentView() {
	case session.ViewLanding:
		body = m.landingView()
	case session.ViewJoinRoom:
		body = m.joinView()
	case session.ViewLobby:
		body = m.lobbyView()
	default:
		body = m.gameView()
	}

	var sb strings.Builder
	sb.WriteString(m.centered(titleStyle.Render("♠ Zobbo")))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(m.centered(statusStyle.Render(m.status)))
	}
	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(m.centered(noticeStyle.Render(m.notice)))
	}
	return sb.String()
}

func (m Model) landingView() string {
	mode := m.sess.Mode()
	modeLine := "Mode: " + mode.String()
	if !mode.SuddenDeath {
		modeLine += "  ←/→ rounds"
	}

	lines := []string{
		"Name:  " + m.nameInput.View(),
		"Room:  " + m.roomInput.View(),
		"",
		modeLine,
	}
	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	help := helpStyle.Render("enter create room · paste a link and enter to join · tab switch · ctrl+g mode · ctrl+c quit")
	return m.centered(box) + "\n" + m.centered(help)
}

func (m Model) joinView() string {
	lines := []string{
		"Room " + m.sess.RoomID(),
		"",
		"Name:  " + m.nameInput.View(),
	}
	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	help := helpStyle.Render("enter join · ctrl+c quit")
	return m.centered(box) + "\n" + m.centered(help)
}

func (m Model) lobbyView() string {
	lobby := m.sess.Lobby()

	lines := []string{"Room " + m.sess.RoomID(), ""}
	if lobby != nil {
		for _, p := range lobby.Players {
			lines = append(lines, playerLine(p, p.ID == m.sess.PlayerID()))
		}
	}
	lines = append(lines, "", lobbyStatus(lobby))
	lines = append(lines, "", faintStyle.Render("Invite: "+m.sess.InviteLink()))

	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	help := helpStyle.Render("r ready · q quit")
	return m.centered(box) + "\n" + m.centered(help)
}

func (m Model) gameView() string {
	if result := m.sess.Result(); result != nil {
		return m.centered(boxStyle.Render(resultLines(result, m.sess.PlayerID())))
	}

	game := m.sess.Game()
	if game == nil {
		return m.centered(faintStyle.Render("Waiting for the first game update…"))
	}

	lines := []string{
		"Stage: " + game.Stage,
		fmt.Sprintf("Deck %d · Discard %d", game.DeckCount, game.DiscardCount),
	}
	if game.DiscardTop != nil {
		lines = append(lines, "Discard top: "+cardLabel(*game.DiscardTop))
	}
	if game.Active == m.sess.PlayerID() {
		lines = append(lines, readyStyle.Render("Your turn"))
	} else {
		lines = append(lines, faintStyle.Render("Opponent's turn"))
	}
	if game.ZobboRemaining != nil {
		lines = append(lines, statusStyle.Render(fmt.Sprintf("Zobbo called! %d turns left", *game.ZobboRemaining)))
	}
	lines = append(lines,
		"",
		"You:      "+slotRow(game.You.Slots),
		"Opponent: "+slotRow(game.Opponent.Slots),
	)

	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	help := helpStyle.Render("q quit")
	return m.centered(box) + "\n" + m.centered(help)
}

func (m Model) centered(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func playerLine(p protocol.Player, self bool) string {
	name := p.Name
	if self {
		name += " (you)"
	}
	state := faintStyle.Render("not ready")
	if p.Ready {
		state = readyStyle.Render("ready")
	}
	if !p.Connected {
		state = errorStyle.Render("disconnected")
	}
	return fmt.Sprintf("%-26s %s", name, state)
}

// lobbyStatus summarizes lobby progress for the status line.
func lobbyStatus(lobby *protocol.Lobby) string {
	switch {
	case lobby == nil || !lobby.Full():
		return "Waiting for an opponent…"
	case lobby.AllReady():
		return "Both players ready, starting…"
	default:
		return "Opponent found, press r when ready"
	}
}

func slotRow(slots []protocol.Slot) string {
	if len(slots) == 0 {
		return faintStyle.Render("no cards")
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		if s.Empty {
			parts[i] = "·"
		} else {
			parts[i] = "🂠"
		}
	}
	return strings.Join(parts, " ")
}

func cardLabel(c protocol.Card) string {
	label := c.Rank
	if c.IsRedKing {
		label += " (red king)"
	}
	return label
}

func resultLines(r *protocol.GameOver, playerID string) string {
	var headline string
	switch {
	case r.Winner == "":
		headline = "Draw"
	case r.Winner == playerID:
		headline = "You win!"
	default:
		headline = "You lose"
	}

	lines := []string{
		titleStyle.Render(headline),
		"",
		fmt.Sprintf("You:      %2d  %s", r.YourScore, cardList(r.YouCards)),
		fmt.Sprintf("Opponent: %2d  %s", r.OppScore, cardList(r.OppCards)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func cardList(cards []protocol.CardFull) string {
	if len(cards) == 0 {
		return ""
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Rank + " of " + c.Suit
	}
	return strings.Join(parts, ", ")
}
