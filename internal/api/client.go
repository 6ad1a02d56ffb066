// Package api is the thin REST wrapper for room creation and join. The
// persistent connection lives in transport; everything here is plain
// request/response.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Spyabo/Zobbo/internal/apperrors"
	"github.com/Spyabo/Zobbo/internal/protocol"
)

const requestTimeout = 10 * time.Second

// Client talks to one room server.
type Client struct {
	base string
	http *http.Client
}

// New returns a client for the given http(s) origin.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: requestTimeout},
	}
}

// CreatedRoom is the create-room response.
type CreatedRoom struct {
	RoomID   string `json:"room_id"`
	ShareURL string `json:"share_url"`
}

// JoinedRoom is the join-room response.
type JoinedRoom struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
}

type createRoomRequest struct {
	Mode protocol.Mode `json:"mode"`
}

type joinRoomRequest struct {
	Name string `json:"name"`
}

// CreateRoom asks the server for a fresh room in the given mode.
func (c *Client) CreateRoom(ctx context.Context, mode protocol.Mode) (*CreatedRoom, error) {
	var created CreatedRoom
	if err := c.post(ctx, "create room", "/api/room", createRoomRequest{Mode: mode}, &created); err != nil {
		return nil, err
	}
	log.Info().Str("room_id", created.RoomID).Msg("room created")
	return &created, nil
}

// JoinRoom claims a seat in the room and returns the issued credential.
func (c *Client) JoinRoom(ctx context.Context, roomID, name string) (*JoinedRoom, error) {
	var joined JoinedRoom
	path := fmt.Sprintf("/api/room/%s/join", roomID)
	if err := c.post(ctx, "join room", path, joinRoomRequest{Name: name}, &joined); err != nil {
		return nil, err
	}
	log.Info().Str("room_id", roomID).Str("player_id", joined.PlayerID).Msg("room joined")
	return &joined, nil
}

// post issues one JSON request. A non-2xx response becomes a RequestError
// carrying the server's body text verbatim.
func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &apperrors.RequestError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(text)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
