package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/Seven-Network/GameServer/internal/engine"
	"github.com/Seven-Network/GameServer/internal/protocol"
	"github.com/Seven-Network/GameServer/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocket settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client sits between one websocket and its room.
type Client struct {
	Room      *engine.Room
	Conn      *websocket.Conn
	ConnID    string
	SessionID int
	Out       <-chan []byte

	log *logrus.Entry
}

// NewClient admits the connection into the room. The room answers with auth(true) on Out.
func NewClient(room *engine.Room, conn *websocket.Conn, connID string) (*Client, error) {
	id, out, err := room.Connect(connID)
	if err != nil {
		return nil, err
	}
	return &Client{
		Room:      room,
		Conn:      conn,
		ConnID:    connID,
		SessionID: id,
		Out:       out,
		log: logger.Log.WithFields(logrus.Fields{
			"room_id":    room.ID,
			"session_id": id,
			"conn_id":    connID,
		}),
	}, nil
}

// readPump decodes client frames and hands them to the room.
func (c *Client) readPump() {
	defer func() {
		if err := c.Room.Leave(c.SessionID); err != nil && !errors.Is(err, engine.ErrRoomClosed) {
			c.log.WithError(err).Warn("failed to report disconnect")
		}
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			c.log.WithError(err).Debug("Discarding malformed frame")
			continue
		}
		if err := c.Room.Deliver(c.SessionID, msg); err != nil {
			return
		}
	}
}

// writePump forwards room frames to the socket and keeps it alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.Out:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// the room dropped this session (kick, shutdown)
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				c.log.WithError(err).Debug("write frame failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
