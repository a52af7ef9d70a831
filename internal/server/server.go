package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/diegok/duopong/internal/protocol"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
)

//go:embed web
var webFiles embed.FS

const (
	indexDoc    = "index.html"
	notFoundDoc = "404.html"
)

// Server serves the web documents and the read-only spectator feed
type Server struct {
	addr       string
	httpServer *http.Server
	listener   net.Listener
	web        fs.FS
	upgrader   websocket.Upgrader

	mu         sync.RWMutex
	spectators map[string]*Spectator
	latest     protocol.MatchState
	hasState   bool
	lastWinner protocol.Side
}

// NewServer creates a server that will listen on addr
func NewServer(addr string) *Server {
	web, err := fs.Sub(webFiles, "web")
	if err != nil {
		panic(err) // embedded directory is always present
	}

	s := &Server{
		addr:       addr,
		web:        web,
		spectators: make(map[string]*Spectator),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the full HTTP handler, middleware included
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/assets/{name}", s.handleAsset).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWS)
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleNotFound)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return corsHandler.Handler(securityHeaders(logRequests(r)))
}

// Start begins listening and serving in the background
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener
	log.Printf("http: listening on %s", listener.Addr())

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http: serve: %v", err)
		}
	}()

	return nil
}

// Addr returns the bound address once started
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop closes every spectator and shuts the HTTP server down
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	for id, sp := range s.spectators {
		sp.Close()
		delete(s.spectators, id)
	}
	s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Publish records the latest frame and fans it out to every spectator.
// A winner message goes out once each time a new winner appears.
func (s *Server) Publish(state protocol.MatchState) {
	s.mu.Lock()
	s.latest = state
	s.hasState = true
	announce := state.Winner != protocol.SideNone && state.Winner != s.lastWinner
	s.lastWinner = state.Winner
	spectators := make([]*Spectator, 0, len(s.spectators))
	for _, sp := range s.spectators {
		spectators = append(spectators, sp)
	}
	s.mu.Unlock()

	if len(spectators) == 0 {
		return
	}

	frame, err := prepare(protocol.StateMessage(state))
	if err != nil {
		log.Printf("spectators: %v", err)
		return
	}
	var winner *websocket.PreparedMessage
	if announce {
		if winner, err = prepare(protocol.WinnerMessage(state)); err != nil {
			log.Printf("spectators: %v", err)
		}
	}

	for _, sp := range spectators {
		sp.Send(frame)
		if winner != nil {
			sp.Send(winner)
		}
	}
}

// SpectatorCount returns the number of connected spectators
func (s *Server) SpectatorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spectators)
}

func prepare(msg *protocol.Message) (*websocket.PreparedMessage, error) {
	data, err := protocol.Encode(msg)
	if err != nil {
		return nil, err
	}
	return websocket.NewPreparedMessage(websocket.TextMessage, data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.serveDoc(w, indexDoc, http.StatusOK)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.serveDoc(w, notFoundDoc, http.StatusNotFound)
}

func (s *Server) serveDoc(w http.ResponseWriter, name string, status int) {
	data, err := fs.ReadFile(s.web, name)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := "assets/" + mux.Vars(r)["name"]
	if info, err := fs.Stat(s.web, name); err != nil || info.IsDir() {
		s.handleNotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, s.web, name)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	state, ok := s.latest, s.hasState
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "no match running"})
		return
	}
	json.NewEncoder(w).Encode(state)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an error status
		log.Printf("spectators: upgrade: %v", err)
		return
	}

	sp := NewSpectator(conn)
	hello, err := prepare(&protocol.Message{
		Type:  protocol.MsgHello,
		Hello: &protocol.Hello{SpectatorID: sp.ID},
	})
	if err != nil || sp.SendDirect(hello) != nil {
		sp.Close()
		return
	}

	// Register and read the latest frame under one lock so no frame
	// published in between is lost.
	s.mu.Lock()
	s.spectators[sp.ID] = sp
	state, ok := s.latest, s.hasState
	s.mu.Unlock()

	log.Printf("spectators: %s connected from %s", sp.ID, r.RemoteAddr)

	if ok {
		if frame, err := prepare(protocol.StateMessage(state)); err == nil {
			sp.SendDirect(frame)
		}
	}
	sp.StartWriter()
	sp.ReadLoop()

	s.mu.Lock()
	delete(s.spectators, sp.ID)
	s.mu.Unlock()
	sp.Close()

	log.Printf("spectators: %s disconnected", sp.ID)
}

// LocalAddresses returns the IPv4 addresses of this host with port
// appended, for telling spectators where to connect
func LocalAddresses(port string) []string {
	var addresses []string

	interfaces, err := net.Interfaces()
	if err != nil {
		return addresses
	}

	for _, iface := range interfaces {
		// Skip loopback and down interfaces
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			// Only include IPv4 addresses
			if ip != nil && ip.To4() != nil {
				addresses = append(addresses, net.JoinHostPort(ip.String(), port))
			}
		}
	}

	return addresses
}
