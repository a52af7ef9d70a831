package client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/diegok/duopong/internal/protocol"
	"github.com/gorilla/websocket"
)

const (
	channelBufferSize = 16
	connectTimeout    = 5 * time.Second
)

// Client is a read-only spectator of a match served with --http
type Client struct {
	SpectatorID string
	conn        *websocket.Conn
	mu          sync.Mutex
	connected   bool
	State       chan protocol.MatchState
	Winner      chan protocol.WinnerState
	Error       chan error
	done        chan struct{}
	closeOnce   sync.Once
}

// NewClient creates an unconnected spectator client
func NewClient() *Client {
	return &Client{
		State:  make(chan protocol.MatchState, channelBufferSize),
		Winner: make(chan protocol.WinnerState, channelBufferSize),
		Error:  make(chan error, channelBufferSize),
		done:   make(chan struct{}),
	}
}

// Connect opens the spectator feed at addr (host:port) and waits for the
// hello message before returning. Cancelling ctx aborts both the dial and
// the wait for hello.
func (c *Client) Connect(ctx context.Context, addr string) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	dialer := websocket.Dialer{HandshakeTimeout: connectTimeout}

	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	c.conn = conn

	// Set read deadline for the hello
	c.conn.SetReadDeadline(time.Now().Add(connectTimeout))
	stop := context.AfterFunc(ctx, func() { conn.Close() })

	msg, err := c.read()
	if !stop() {
		conn.Close()
		return fmt.Errorf("failed to receive hello: %w", context.Cause(ctx))
	}
	if err != nil {
		c.conn.Close()
		return fmt.Errorf("failed to receive hello: %w", err)
	}

	// Clear read deadline
	c.conn.SetReadDeadline(time.Time{})

	if msg.Type != protocol.MsgHello {
		c.conn.Close()
		return fmt.Errorf("expected hello, got message type %q", msg.Type)
	}

	c.SpectatorID = msg.Hello.SpectatorID
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	go c.receiveLoop()

	return nil
}

func (c *Client) read() (*protocol.Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return protocol.Decode(data)
}

// Close closes the connection to the server. The socket is closed even
// when the receive loop has already stopped on an error.
func (c *Client) Close() {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	c.closeOnce.Do(func() { close(c.done) })

	if c.conn != nil {
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.conn.Close()
	}
}

// IsConnected returns true if the client is connected to the server.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// receiveLoop continuously reads messages from the server and dispatches them.
func (c *Client) receiveLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		msg, err := c.read()
		if err != nil {
			select {
			case <-c.done:
				return
			default:
				select {
				case c.Error <- fmt.Errorf("receive error: %w", err):
				default:
					// Drop error if channel is full
				}
				return
			}
		}

		c.dispatchMessage(msg)
	}
}

// dispatchMessage routes a message to the appropriate channel.
func (c *Client) dispatchMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgMatchState:
		offer(c.State, *msg.State)
	case protocol.MsgWinner:
		offer(c.Winner, *msg.Winner)
	}
}

// offer sends v, dropping the oldest queued value if ch is full.
// Only the receive loop sends, so the retry cannot block.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}
