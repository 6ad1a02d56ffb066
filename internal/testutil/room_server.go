// Package testutil provides an in-process Zobbo room server for client
// tests: the create/join REST endpoints plus the room websocket, with
// scriptable pushes and failure injection.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// RoomServer fakes one room server hosting one room.
type RoomServer struct {
	Server *httptest.Server

	RoomID   string
	Token    string
	PlayerID string

	// Failure injection: a non-zero status makes the endpoint reject with
	// the given body text.
	CreateStatus int
	CreateBody   string
	JoinStatus   int
	JoinBody     string

	// Received collects client→server frames.
	Received chan []byte

	upgrader websocket.Upgrader

	mu       sync.Mutex
	conn     *websocket.Conn
	joinName string
	dials    int
}

// NewRoomServer starts the fake server with fixed identifiers.
func NewRoomServer() *RoomServer {
	s := &RoomServer{
		RoomID:   "11111111-1111-1111-1111-111111111111",
		Token:    "test-token",
		PlayerID: uuid.NewString(),
		Received: make(chan []byte, 64),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/room", s.handleCreate)
	mux.HandleFunc("POST /api/room/{id}/join", s.handleJoin)
	mux.HandleFunc("GET /api/room/{id}/ws", s.handleSocket)
	s.Server = httptest.NewServer(mux)
	return s
}

// URL returns the http origin of the fake server.
func (s *RoomServer) URL() string { return s.Server.URL }

// Close shuts the server and any open room connection.
func (s *RoomServer) Close() {
	s.CloseConn()
	s.Server.Close()
}

func (s *RoomServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	if s.CreateStatus != 0 {
		http.Error(w, s.CreateBody, s.CreateStatus)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"room_id":   s.RoomID,
		"share_url": s.Server.URL + "/" + s.RoomID,
	})
}

func (s *RoomServer) handleJoin(w http.ResponseWriter, r *http.Request) {
	if s.JoinStatus != 0 {
		http.Error(w, s.JoinBody, s.JoinStatus)
		return
	}
	if r.PathValue("id") != s.RoomID {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	s.joinName = body.Name
	s.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]string{
		"token":     s.Token,
		"player_id": s.PlayerID,
	})
}

func (s *RoomServer) handleSocket(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != s.RoomID || r.URL.Query().Get("token") != s.Token {
		http.Error(w, "invalid room or token", http.StatusUnauthorized)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conn = conn
	s.dials++
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		// Answer keepalives like the real server; everything else is left
		// for the test to assert on.
		if strings.Contains(string(data), `"ping"`) {
			_ = s.PushJSON(`{"type":"pong"}`)
		}
		select {
		case s.Received <- data:
		default:
		}
	}
}

// JoinName returns the name from the last join request.
func (s *RoomServer) JoinName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joinName
}

// Dials returns how many times the room websocket was opened.
func (s *RoomServer) Dials() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dials
}

// PushJSON sends a raw frame to the connected client.
func (s *RoomServer) PushJSON(frame string) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return websocket.ErrCloseSent
	}
	return conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

// Push marshals v and sends it as one frame.
func (s *RoomServer) Push(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.PushJSON(string(data))
}

// CloseConn drops the room connection, as a network fault would.
func (s *RoomServer) CloseConn() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}
