package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 64
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxReadSize    = 512
)

// Spectator is a read-only websocket connection receiving match frames
type Spectator struct {
	ID     string
	conn   *websocket.Conn
	sendCh chan *websocket.PreparedMessage
	done   chan struct{}
	mu     sync.Mutex
}

// NewSpectator wraps an upgraded connection with a fresh id
func NewSpectator(conn *websocket.Conn) *Spectator {
	return &Spectator{
		ID:     uuid.NewString(),
		conn:   conn,
		sendCh: make(chan *websocket.PreparedMessage, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// StartWriter starts the goroutine that writes messages to the connection.
// Nothing else may write once it runs.
func (c *Spectator) StartWriter() {
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		defer c.Close()

		for {
			select {
			case <-c.done:
				return
			case msg := <-c.sendCh:
				if err := c.write(msg); err != nil {
					return
				}
			case <-ticker.C:
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
}

// Send queues a message to be sent to the spectator (non-blocking)
func (c *Spectator) Send(msg *websocket.PreparedMessage) {
	select {
	case c.sendCh <- msg:
	default:
		// Buffer full, drop frame
	}
}

// SendDirect writes immediately (for the handshake, before StartWriter)
func (c *Spectator) SendDirect(msg *websocket.PreparedMessage) error {
	return c.write(msg)
}

func (c *Spectator) write(msg *websocket.PreparedMessage) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WritePreparedMessage(msg)
}

// ReadLoop discards everything the spectator sends and returns when the
// connection goes away. Spectators can never drive the match.
func (c *Spectator) ReadLoop() {
	c.conn.SetReadLimit(maxReadSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Close closes the spectator connection
func (c *Spectator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
	}

	if c.conn != nil {
		c.conn.Close()
	}
}
