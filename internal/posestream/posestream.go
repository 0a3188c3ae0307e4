package posestream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"premierepad/internal/logger"
	"premierepad/internal/signal"
)

const writeTimeout = 2 * time.Second

// Frame is the viewer state pushed to stream clients.
type Frame struct {
	ScrollY   float32 `json:"scroll_y"`
	Locked    bool    `json:"locked"`
	Scale     float32 `json:"scale"`
	RotationX float32 `json:"rotation_x"`
	RotationY float32 `json:"rotation_y"`
	Ready     bool    `json:"ready"`
	Failed    bool    `json:"failed"`
	Hint      bool    `json:"hint"`
}

// Server broadcasts Frames to websocket clients on /ws. New clients get the latest
// frame right away. Publish never blocks the caller: only the newest pending frame is sent.
type Server struct {
	log      *logger.Logger
	latest   signal.Value[Frame]
	last     Frame
	sent     bool
	pending  chan Frame
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	srv       *http.Server
	done      chan struct{}
	closeOnce sync.Once
}

// New returns a server and starts its broadcast goroutine. Close stops it.
func New(log *logger.Logger) *Server {
	s := &Server{
		log:     log,
		pending: make(chan Frame, 1),
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
	go s.broadcastLoop()
	return s
}

// Handler serves /ws (stream) and /frame (latest frame as JSON).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/frame", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.latest.Load())
	})
	return mux
}

// Start listens on addr in the background.
func (s *Server) Start(addr string) {
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Logf("posestream: %v", err)
		}
	}()
	s.log.Logf("posestream: serving ws://%s/ws", addr)
}

// Publish records f as the latest frame and queues it for broadcast if it changed.
// Call from a single goroutine (the render loop).
func (s *Server) Publish(f Frame) {
	if s.sent && f == s.last {
		return
	}
	s.last, s.sent = f, true
	s.latest.Store(f)
	select {
	case s.pending <- f:
	default:
		select {
		case <-s.pending:
		default:
		}
		select {
		case s.pending <- f:
		default:
		}
	}
}

// Latest returns the most recently published frame.
func (s *Server) Latest() Frame {
	return s.latest.Load()
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case f := <-s.pending:
			s.broadcast(f)
		}
	}
}

func (s *Server) broadcast(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		s.log.Logf("posestream: marshal: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		if err := s.write(c, data); err != nil {
			s.log.Logf("posestream: dropping client: %v", err)
			_ = c.Close()
			delete(s.clients, c)
		}
	}
}

func (s *Server) write(c *websocket.Conn, data []byte) error {
	_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.WriteMessage(websocket.TextMessage, data)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Logf("posestream: upgrade: %v", err)
		return
	}
	data, _ := json.Marshal(s.latest.Load())

	s.mu.Lock()
	if err := s.write(conn, data); err != nil {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()
	// Reads only detect disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Close stops broadcasting, disconnects clients and shuts the listener down if started.
func (s *Server) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		for c := range s.clients {
			_ = c.Close()
			delete(s.clients, c)
		}
		s.mu.Unlock()
		if s.srv != nil {
			err = s.srv.Shutdown(ctx)
		}
	})
	return err
}
