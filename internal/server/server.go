package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/weather/internal/core/events/bus"
	"github.com/zeusync/weather/internal/core/observability/log"
)

// StatusFunc returns a JSON-serializable view of the simulation.
type StatusFunc func() any

// Server exposes weather notifications over websocket and a status endpoint.
// It is an observer only: nothing it does feeds back into the simulation.
type Server struct {
	config Config
	bus    bus.EventBus
	status StatusFunc
	logger log.Log

	httpServer *http.Server
	listener   net.Listener
	running    int32 // atomic bool

	clients  sync.WaitGroup
	shutdown chan struct{}
	dropped  atomic.Uint64
}

// Config holds server configuration
type Config struct {
	ListenAddr string
	// ClientBuffer is the per-client queue; events beyond it are dropped.
	ClientBuffer int
	WriteTimeout time.Duration
	// EventTypes are the bus event types streamed to clients.
	EventTypes []string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:   "127.0.0.1:8080",
		ClientBuffer: 256,
		WriteTimeout: 5 * time.Second,
		EventTypes:   []string{bus.Wildcard},
	}
}

func NewServer(config Config, b bus.EventBus, status StatusFunc, logger log.Log) (*Server, error) {
	if b == nil || config.ClientBuffer <= 0 || config.WriteTimeout <= 0 || len(config.EventTypes) == 0 {
		return nil, ErrInvalidConfig
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Server{
		config:   config,
		bus:      b,
		status:   status,
		logger:   logger.Named("feed"),
		shutdown: make(chan struct{}),
	}, nil
}

// Handler routes /ws to the notification stream and /status to the snapshot.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// Start listens on config.ListenAddr and serves in the background.
func (s *Server) Start() error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		return err
	}
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("feed server failed", log.Error(err))
		}
	}()
	s.logger.Info("feed listening", log.String("addr", ln.Addr().String()))
	return nil
}

// Addr is the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the HTTP server down and waits for websocket clients to detach.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerClosed
	}
	// Hijacked websocket connections are not tracked by http.Server.
	close(s.shutdown)
	err := s.httpServer.Shutdown(ctx)
	s.clients.Wait()
	return err
}

// Dropped counts events discarded for slow clients.
func (s *Server) Dropped() uint64 { return s.dropped.Load() }

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.status == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.status()); err != nil {
		s.logger.Warn("status encode failed", log.Error(err))
	}
}
