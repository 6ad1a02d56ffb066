package transport

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Spyabo/Zobbo/internal/protocol"
)

// readPump drains inbound frames for the lifetime of one connection.
func (c *Client) readPump() {
	conn := c.conn
	defer c.handleReadExit()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("connection read failed")
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			// A single malformed frame never disrupts the session.
			log.Error().Err(err).Bytes("frame", data).Msg("dropping malformed frame")
			continue
		}

		if c.OnMessage != nil {
			c.OnMessage(msg)
		}
	}
}

func (c *Client) handleReadExit() {
	if c.isClosed() {
		return
	}
	if !c.reconnecting.Load() {
		go c.tryReconnect()
	}
}

// writePump owns the socket for writes. The keepalive ticker lives here,
// emitting an application-level ping on a fixed cadence for the lifetime of
// the connection, independent of any other activity.
func (c *Client) writePump() {
	conn := c.conn
	ticker := time.NewTicker(c.opts.Keepalive)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			// Send failures fall out of the pump; the read side notices the
			// dead socket and drives the reconnect.
			if err := conn.WriteMessage(websocket.TextMessage, protocol.EncodeControl(protocol.TypePing)); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
