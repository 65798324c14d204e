package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

var errMissingPayload = errors.New("payload is required")

// Message is an inbound client intent.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type createGamePayload struct {
	Mode string `json:"mode"`
}

type joinGamePayload struct {
	RoomID string `json:"roomId"`
	Mode   string `json:"mode"`
}

type playPayload struct {
	RoomID string `json:"roomId"`
	Column *int   `json:"column"`
}

type leaveGamePayload struct {
	RoomID string `json:"roomId"`
}

// client is one open connection. Writes happen only on the write pump goroutine.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (that *client) enqueue(data []byte) bool {
	select {
	case <-that.done:
		return true
	default:
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *client) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

// readPump hands every inbound message to handle until the connection fails or is closed.
func (that *client) readPump(handle func(data []byte)) error {
	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				return fmt.Errorf("failed to read message: %w", err)
			}

			return nil
		}

		handle(data)
	}
}

// writePump flushes queued events and keeps the peer alive with pings.
// It closes the connection once the client is closed or a write fails.
func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data := <-that.send:
			if err := that.write(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := that.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-that.done:
			that.flush()

			closing := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = that.write(websocket.CloseMessage, closing)

			return
		}
	}
}

// flush writes whatever is still queued, so events published right before a kick are delivered.
func (that *client) flush() {
	for {
		select {
		case data := <-that.send:
			if err := that.write(websocket.TextMessage, data); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (that *client) write(messageType int, data []byte) error {
	_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := that.conn.WriteMessage(messageType, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
