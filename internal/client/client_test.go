package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diegok/duopong/internal/protocol"
	"github.com/diegok/duopong/internal/server"
	"github.com/gorilla/websocket"
)

func startServer(t *testing.T) (*server.Server, string) {
	t.Helper()
	srv := server.NewServer("127.0.0.1:0")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Stop(context.Background())
		ts.Close()
	})
	return srv, strings.TrimPrefix(ts.URL, "http://")
}

func waitForSpectators(t *testing.T, srv *server.Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for srv.SpectatorCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d spectators, got %d", n, srv.SpectatorCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConnectReceivesHelloAndState(t *testing.T) {
	srv, addr := startServer(t)
	srv.Publish(protocol.MatchState{Tick: 3, Width: 800, Height: 480, PointsToWin: 5})

	c := NewClient()
	if err := c.Connect(context.Background(), addr); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if c.SpectatorID == "" {
		t.Error("expected a spectator id from hello")
	}
	if !c.IsConnected() {
		t.Error("expected client to be connected")
	}

	select {
	case state := <-c.State:
		if state.Tick != 3 {
			t.Errorf("expected tick 3, got %d", state.Tick)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state")
	}
}

func TestWinnerIsDispatched(t *testing.T) {
	srv, addr := startServer(t)

	c := NewClient()
	if err := c.Connect(context.Background(), addr); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()
	waitForSpectators(t, srv, 1)

	srv.Publish(protocol.MatchState{Tick: 1, LeftScore: 1, RightScore: 5, Winner: protocol.SideRight})

	select {
	case w := <-c.Winner:
		if w.Side != protocol.SideRight || w.RightScore != 5 {
			t.Errorf("expected P2 winning with 5, got %+v", w)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for winner")
	}
}

func TestServerGoneReportsError(t *testing.T) {
	srv, addr := startServer(t)

	c := NewClient()
	if err := c.Connect(context.Background(), addr); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()
	waitForSpectators(t, srv, 1)

	srv.Stop(context.Background())

	select {
	case err := <-c.Error:
		if err == nil {
			t.Error("expected a receive error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestCloseAfterReceiveErrorClosesSocket(t *testing.T) {
	srv, addr := startServer(t)

	c := NewClient()
	if err := c.Connect(context.Background(), addr); err != nil {
		t.Fatalf("connect: %v", err)
	}
	waitForSpectators(t, srv, 1)
	srv.Stop(context.Background())

	select {
	case <-c.Error:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
	deadline := time.Now().Add(2 * time.Second)
	for c.IsConnected() {
		if time.Now().After(deadline) {
			t.Fatal("expected receive loop to stop")
		}
		time.Sleep(5 * time.Millisecond)
	}

	c.Close()

	if _, err := c.conn.NetConn().Write([]byte{0}); !errors.Is(err, net.ErrClosed) {
		t.Errorf("expected socket closed, got %v", err)
	}
}

func TestConnectCancelledWhileWaitingForHello(t *testing.T) {
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// never says hello
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	c := NewClient()
	start := time.Now()
	err := c.Connect(ctx, strings.TrimPrefix(ts.URL, "http://"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expected cancel to abort the hello wait, took %v", elapsed)
	}
	if c.IsConnected() {
		t.Error("expected client to stay disconnected")
	}
}

func TestConnectFails(t *testing.T) {
	c := NewClient()
	if err := c.Connect(context.Background(), "127.0.0.1:1"); err == nil {
		c.Close()
		t.Error("expected error connecting to a closed port")
	}
	if c.IsConnected() {
		t.Error("expected client to stay disconnected")
	}
}

func TestOfferDropsOldest(t *testing.T) {
	ch := make(chan int, 2)
	offer(ch, 1)
	offer(ch, 2)
	offer(ch, 3)

	if got := <-ch; got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := <-ch; got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	_, addr := startServer(t)

	c := NewClient()
	if err := c.Connect(context.Background(), addr); err != nil {
		t.Fatalf("connect: %v", err)
	}
	c.Close()
	c.Close()
	if c.IsConnected() {
		t.Error("expected client to be disconnected after Close")
	}
}
