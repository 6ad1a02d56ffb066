package protocol

import (
	"encoding/json"
	"fmt"
)

// DefaultBattleRounds is the round count a battle falls back to when none is
// chosen.
const DefaultBattleRounds = 3

// Mode is the room's game mode, fixed at creation time. The server encodes it
// as either the string "sudden-death" or the object
// {"zobbo-battle":{"rounds":N}}.
type Mode struct {
	SuddenDeath bool
	Rounds      int // battle only
}

// SuddenDeathMode returns the sudden-death mode.
func SuddenDeathMode() Mode { return Mode{SuddenDeath: true} }

// BattleMode returns a battle mode over the given number of rounds. A zero
// count falls back to the default; anything below one is clamped to one.
func BattleMode(rounds int) Mode {
	if rounds == 0 {
		rounds = DefaultBattleRounds
	}
	if rounds < 1 {
		rounds = 1
	}
	return Mode{Rounds: rounds}
}

func (m Mode) String() string {
	if m.SuddenDeath {
		return "sudden death"
	}
	return fmt.Sprintf("battle (%d rounds)", m.Rounds)
}

type battleBody struct {
	Rounds int `json:"rounds"`
}

// MarshalJSON encodes the mode using the server's externally tagged layout.
func (m Mode) MarshalJSON() ([]byte, error) {
	if m.SuddenDeath {
		return json.Marshal("sudden-death")
	}
	return json.Marshal(map[string]battleBody{
		"zobbo-battle": {Rounds: m.Rounds},
	})
}

// UnmarshalJSON accepts both encodings of the mode.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "sudden-death" {
			return fmt.Errorf("unknown mode %q", s)
		}
		*m = Mode{SuddenDeath: true}
		return nil
	}

	var obj map[string]battleBody
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode mode: %w", err)
	}
	body, ok := obj["zobbo-battle"]
	if !ok {
		return fmt.Errorf("decode mode: unknown variant")
	}
	*m = Mode{Rounds: body.Rounds}
	return nil
}

// Player is one seat in the lobby. Ready and connected are authoritative from
// the server; the client never guesses them.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
	Ready     bool   `json:"ready"`
}

// Lobby is the full pre-game room snapshot. Players are in join order, at
// most two for this game. Snapshots are replaced wholesale, never merged.
type Lobby struct {
	RoomID  string   `json:"room_id"`
	Mode    Mode     `json:"mode"`
	Players []Player `json:"players"`
}

// PlayerByID returns the player with the given id, if present.
func (l Lobby) PlayerByID(id string) (Player, bool) {
	for _, p := range l.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Full reports whether both seats are taken.
func (l Lobby) Full() bool { return len(l.Players) >= 2 }

// AllReady reports whether both seats are taken, connected and ready.
func (l Lobby) AllReady() bool {
	if !l.Full() {
		return false
	}
	for _, p := range l.Players {
		if !p.Ready || !p.Connected {
			return false
		}
	}
	return true
}

// Card is a rank with the only suit information the server exposes mid-game:
// whether it is the red king.
type Card struct {
	Rank      string `json:"rank"`
	IsRedKing bool   `json:"is_red_king"`
}

// CardFull is a fully revealed card, pushed only at game over.
type CardFull struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// Slot is one face-down position in a seat. The version bumps whenever the
// hidden card changes, which lets a renderer animate swaps it cannot see.
type Slot struct {
	Empty   bool   `json:"empty"`
	Version uint64 `json:"version"`
}

// Seat is this player's own visible board state.
type Seat struct {
	Slots []Slot `json:"slots"`
}

// Opponent is the other player's visible board state.
type Opponent struct {
	Slots []Slot `json:"slots"`
}

// GameSnapshot is the full in-game view the server pushes after every move.
// Like the lobby it is replaced wholesale.
type GameSnapshot struct {
	You            Seat     `json:"you"`
	Opponent       Opponent `json:"opponent"`
	Active         string   `json:"active"`
	Stage          string   `json:"stage"`
	DiscardTop     *Card    `json:"discard_top"`
	DeckCount      int      `json:"deck_count"`
	DiscardCount   int      `json:"discard_count"`
	ZobboRemaining *int     `json:"zobbo_remaining"`
}
