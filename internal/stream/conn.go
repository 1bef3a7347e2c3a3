package stream

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const maxInboundMessageSize = 512

// Conn is one open streaming channel to a single client. Identity is the
// interface value itself, so implementations must be pointer types.
type Conn interface {
	ID() string
	// Send writes one outbound frame, bounded by the implementation's write
	// deadline.
	Send(v any) error
	// Receive blocks for the next inbound text frame.
	Receive() (string, error)
	Close() error
}

// SendFailure is the typed result of a push that did not reach its client.
type SendFailure struct {
	ConnID string
	Event  string
	Err    error
}

func (f *SendFailure) Error() string {
	return fmt.Sprintf("send %s to %s: %v", f.Event, f.ConnID, f.Err)
}

func (f *SendFailure) Unwrap() error { return f.Err }

var ErrConnClosed = errors.New("connection closed")

// wsConn adapts a gorilla websocket to Conn. Gorilla allows one concurrent
// writer, so writes are serialised.
type wsConn struct {
	id        string
	ws        *websocket.Conn
	writeWait time.Duration

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newWSConn(ws *websocket.Conn, writeWait time.Duration) *wsConn {
	ws.SetReadLimit(maxInboundMessageSize)
	return &wsConn{
		id:        uuid.NewString(),
		ws:        ws,
		writeWait: writeWait,
	}
}

func (c *wsConn) ID() string { return c.id }

func (c *wsConn) Send(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(v)
}

func (c *wsConn) Receive() (string, error) {
	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			return "", err
		}
		if mt == websocket.TextMessage {
			return string(data), nil
		}
	}
}

func (c *wsConn) Close() error {
	err := ErrConnClosed
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(c.writeWait))
		err = c.ws.Close()
	})
	return err
}
