// Package protocol defines the JSON wire types exchanged with a Zobbo room
// server. Every frame is an object with a "type" discriminant; the remaining
// fields sit beside it at the top level.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Type is a frame discriminant.
type Type string

// Client → server frame types.
const (
	TypePing  Type = "ping"
	TypeReady Type = "ready"
)

// Server → client frame types.
const (
	TypeWelcome     Type = "welcome"      // sent once per connection open
	TypeLobbyUpdate Type = "lobby_update" // full lobby snapshot
	TypeGameStart   Type = "game_start"   // both players ready
	TypeGameUpdate  Type = "game_update"  // full game snapshot
	TypeGameOver    Type = "game_over"    // final scores
	TypeError       Type = "error"
	TypePong        Type = "pong"
)

// Message is one inbound server frame.
type Message interface {
	MsgType() Type
}

// Welcome is the first frame after a connection opens. The server repeats it
// on every reopen, so the player id may describe an identity the client
// already holds.
type Welcome struct {
	PlayerID string `json:"player_id"`
	Lobby    Lobby  `json:"lobby"`
}

// LobbyUpdate carries a full replacement lobby snapshot.
type LobbyUpdate struct {
	Lobby Lobby `json:"lobby"`
}

// GameStart announces that the game has begun.
type GameStart struct {
	StartingPlayer string `json:"starting_player"`
	Mode           Mode   `json:"mode"`
}

// GameUpdate carries a full replacement game snapshot.
type GameUpdate struct {
	Update GameSnapshot `json:"update"`
}

// GameOver carries the final result from this player's perspective.
type GameOver struct {
	YourScore int        `json:"your_score"`
	OppScore  int        `json:"opp_score"`
	YouCards  []CardFull `json:"you_cards"`
	OppCards  []CardFull `json:"opp_cards"`
	Winner    string     `json:"winner,omitempty"` // empty on a draw
}

// ServerError is a server-reported failure. It never mutates client state.
type ServerError struct {
	Message string `json:"message"`
}

// Pong acknowledges a keepalive ping.
type Pong struct{}

// Unknown is the catch-all for discriminants this client does not recognize
// and for recognized frames whose fields fail to decode. Carrying the raw
// bytes keeps the frame available for diagnostics.
type Unknown struct {
	Type Type
	Raw  json.RawMessage
}

func (Welcome) MsgType() Type     { return TypeWelcome }
func (LobbyUpdate) MsgType() Type { return TypeLobbyUpdate }
func (GameStart) MsgType() Type   { return TypeGameStart }
func (GameUpdate) MsgType() Type  { return TypeGameUpdate }
func (GameOver) MsgType() Type    { return TypeGameOver }
func (ServerError) MsgType() Type { return TypeError }
func (Pong) MsgType() Type        { return TypePong }
func (u Unknown) MsgType() Type   { return u.Type }

// Decode parses one inbound frame. It fails only when the bytes are not a
// JSON object carrying a string "type"; a recognized type whose remaining
// fields do not decode, or a type this client has never heard of, comes back
// as Unknown so a single odd frame cannot tear down the session.
func Decode(data []byte) (Message, error) {
	var env struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("decode frame: missing type")
	}

	var (
		msg Message
		err error
	)
	switch env.Type {
	case TypeWelcome:
		var m Welcome
		err = json.Unmarshal(data, &m)
		msg = m
	case TypeLobbyUpdate:
		var m LobbyUpdate
		err = json.Unmarshal(data, &m)
		msg = m
	case TypeGameStart:
		var m GameStart
		err = json.Unmarshal(data, &m)
		msg = m
	case TypeGameUpdate:
		var m GameUpdate
		err = json.Unmarshal(data, &m)
		msg = m
	case TypeGameOver:
		var m GameOver
		err = json.Unmarshal(data, &m)
		msg = m
	case TypeError:
		var m ServerError
		err = json.Unmarshal(data, &m)
		msg = m
	case TypePong:
		msg = Pong{}
	default:
		msg = Unknown{Type: env.Type, Raw: append(json.RawMessage(nil), data...)}
	}
	if err != nil {
		return Unknown{Type: env.Type, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	return msg, nil
}

// EncodeControl serializes an outgoing control frame. The client only ever
// sends bare discriminants (ping, ready).
func EncodeControl(t Type) []byte {
	data, _ := json.Marshal(struct {
		Type Type `json:"type"`
	}{Type: t})
	return data
}
