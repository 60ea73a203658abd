package web

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Client is a websocket connection to the hub.
type Client struct {
	hub  *hub
	conn *websocket.Conn
	Send chan []byte
	ID   uint32
}

// ReadPump reads requests from the client, and queues the responses.
func (c *Client) ReadPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req Request
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Errorf("web: client %d: %v", c.ID, err)
			}
			return // connection closed
		}

		resp := handle(c.hub.d, req, c.hub.maxSteps)
		msg, err := json.Marshal(resp)
		if err != nil {
			c.hub.log.Errorf("web: client %d: %v", c.ID, err)
			continue
		}
		if !c.hub.dispatch(message{to: c, data: msg}) {
			return
		}

		// let everyone else know the machine moved
		if resp.Stop != nil {
			resp.Cmd = Stopped
			if msg, err := json.Marshal(resp); err == nil {
				c.hub.dispatch(message{from: c, data: msg})
			}
		}
	}
}

// WritePump writes queued messages to the client, and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			// hub closed the channel
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
