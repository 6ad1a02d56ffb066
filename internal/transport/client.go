// Package transport owns the persistent websocket connection to a room. It
// serializes outgoing control frames, decodes inbound frames into protocol
// messages, keeps the link alive with periodic pings and redials with
// exponential backoff when it drops.
package transport

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Spyabo/Zobbo/internal/protocol"
)

const (
	writeWait        = 10 * time.Second
	handshakeTimeout = 10 * time.Second

	defaultKeepalive          = 15 * time.Second
	defaultReconnectAttempts  = 5
	defaultReconnectBaseDelay = 500 * time.Millisecond
	maxReconnectDelay         = 30 * time.Second
)

// Options tunes a connection. Zero values take the defaults.
type Options struct {
	Keepalive            time.Duration
	ReconnectMaxAttempts int
	ReconnectBaseDelay   time.Duration
}

func (o *Options) applyDefaults() {
	if o.Keepalive == 0 {
		o.Keepalive = defaultKeepalive
	}
	if o.ReconnectMaxAttempts == 0 {
		o.ReconnectMaxAttempts = defaultReconnectAttempts
	}
	if o.ReconnectBaseDelay == 0 {
		o.ReconnectBaseDelay = defaultReconnectBaseDelay
	}
}

// Client is one persistent connection, opened per join and tagged with the
// session token as a query credential.
type Client struct {
	url  string
	opts Options

	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	// Callbacks run on the transport's goroutines; receivers hand off to
	// their own event loop.
	OnMessage      func(protocol.Message)
	OnClose        func()
	OnReconnecting func(attempt, maxAttempts int)
	OnReconnect    func()

	mu           sync.RWMutex
	closed       bool
	reconnecting atomic.Bool
}

// SocketURL derives the room websocket endpoint from the server's http(s)
// origin, with the token as a query credential.
func SocketURL(origin, roomID, token string) (string, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	u.Path = fmt.Sprintf("/api/room/%s/ws", roomID)
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}

// New prepares a connection without dialing, so callbacks can be registered
// before the first frame arrives.
func New(origin, roomID, token string, opts Options) (*Client, error) {
	wsURL, err := SocketURL(origin, roomID, token)
	if err != nil {
		return nil, err
	}
	opts.applyDefaults()

	return &Client{
		url:  wsURL,
		opts: opts,
		send: make(chan []byte, 64),
		done: make(chan struct{}),
	}, nil
}

// Connect dials the endpoint and starts the read/write pumps.
func (c *Client) Connect() error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return err
	}

	c.conn = conn
	go c.readPump()
	go c.writePump()
	return nil
}

// SendControl queues an outgoing control frame. Errors (connection closed,
// buffer full) are reported so best-effort callers can swallow them.
func (c *Client) SendControl(t protocol.Type) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return errors.New("connection closed")
	}
	c.mu.RUnlock()

	select {
	case c.send <- protocol.EncodeControl(t):
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Close shuts the connection and stops the pumps and the keepalive timer.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	}
}

// IsConnected reports whether the connection is open.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed && c.conn != nil
}

// IsReconnecting reports whether a redial is in progress.
func (c *Client) IsReconnecting() bool {
	return c.reconnecting.Load()
}
