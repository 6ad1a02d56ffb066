package transport

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// tryReconnect redials the room endpoint with exponential backoff. The
// already-issued token rides along in the URL, so resumption is a plain
// reopen followed by the server's usual welcome. Once the allowed attempts
// are spent the connection is closed for good and OnClose fires.
func (c *Client) tryReconnect() {
	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}

	delay := c.opts.ReconnectBaseDelay
	for attempt := 1; attempt <= c.opts.ReconnectMaxAttempts; attempt++ {
		if c.OnReconnecting != nil {
			c.OnReconnecting(attempt, c.opts.ReconnectMaxAttempts)
		}
		log.Info().Int("attempt", attempt).Int("max", c.opts.ReconnectMaxAttempts).Msg("reconnecting")

		time.Sleep(delay)
		delay *= 2
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}

		if c.isClosed() {
			c.reconnecting.Store(false)
			return
		}

		dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
		conn, _, err := dialer.Dial(c.url, nil)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("reconnect failed")
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()

		go c.readPump()
		go c.writePump()

		c.reconnecting.Store(false)
		log.Info().Msg("reconnected")
		if c.OnReconnect != nil {
			c.OnReconnect()
		}
		return
	}

	log.Error().Msg("reconnect attempts exhausted")
	c.reconnecting.Store(false)
	c.Close()
	if c.OnClose != nil {
		c.OnClose()
	}
}
