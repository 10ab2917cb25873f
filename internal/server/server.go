package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/sensor"
)

// Source provides the frames streamed to debug clients.
type Source interface {
	Frames() []sensor.Frame
}

// Server streams sensor debug frames over HTTP and WebSocket
type Server struct {
	source Source

	httpServer *http.Server
	listener   atomic.Value // net.Listener

	// Client management
	clientsMx   sync.RWMutex
	clients     map[*client]struct{}
	clientCount int64 // atomic

	seq uint64 // atomic, last broadcast sequence number

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	config Config
	logger log.Log

	// Background workers
	workerGroup sync.WaitGroup
	stopChan    chan struct{}
}

// Config holds server configuration
type Config struct {
	ListenAddr string
	// Token, when set, must be presented by every request as a "token" query
	// parameter or a bearer Authorization header.
	Token string

	MaxClients     int
	SendBufferSize int
	MaxMessageSize int64

	WriteTimeout time.Duration
	PingInterval time.Duration
	PongTimeout  time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:     "127.0.0.1:8080",
		MaxClients:     64,
		SendBufferSize: 16,
		MaxMessageSize: 4 * 1024,
		WriteTimeout:   5 * time.Second,
		PingInterval:   20 * time.Second,
		PongTimeout:    60 * time.Second,
	}
}

// Message is one broadcast of every sensor frame.
type Message struct {
	Seq     uint64         `json:"seq"`
	Time    time.Time      `json:"time"`
	Sensors []sensor.Frame `json:"sensors"`
}

// Stats contains server statistics
type Stats struct {
	ClientCount int64  `json:"client_count"`
	Broadcasts  uint64 `json:"broadcasts"`
	Running     bool   `json:"running"`
}

// withDefaults fills zero fields from DefaultServerConfig.
func (c Config) withDefaults() Config {
	def := DefaultServerConfig()
	if c.ListenAddr == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = def.SendBufferSize
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = def.PingInterval
	}
	if c.PongTimeout <= 0 {
		c.PongTimeout = def.PongTimeout
	}
	return c
}

// NewServer creates a debug stream server reading frames from source.
// Zero config fields take their defaults; MaxClients 0 means unlimited.
func NewServer(config Config, source Source, logger log.Log) *Server {
	config = config.withDefaults()
	if logger == nil {
		logger = log.Provide()
	}

	server := &Server{
		source:   source,
		clients:  make(map[*client]struct{}),
		config:   config,
		logger:   logger.With(log.String("component", "server")),
		stopChan: make(chan struct{}),
	}

	server.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.Int("max_clients", config.MaxClients))

	return server
}

// Start starts listening and serving in the background
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}

	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	s.logger.Info("Starting server")

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}

	s.clientsMx.Lock()
	s.stopChan = make(chan struct{})
	s.clientsMx.Unlock()

	s.listener.Store(listener)
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))

	return nil
}

// Stop disconnects every client and shuts the HTTP server down
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")

	s.clientsMx.Lock()
	close(s.stopChan)
	for c := range s.clients {
		s.dropLocked(c)
	}
	s.clientsMx.Unlock()

	err := s.httpServer.Shutdown(ctx)

	s.workerGroup.Wait()

	s.logger.Info("Server stopped")

	return err
}

// Close stops the server if needed; a closed server cannot be started again
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}

	s.logger.Info("Closing server")

	if atomic.LoadInt32(&s.running) == 1 {
		_ = s.Stop(context.Background())
	}

	s.logger.Info("Server closed")

	return nil
}

// Addr returns the bound listen address, or "" when not started
func (s *Server) Addr() string {
	l, ok := s.listener.Load().(net.Listener)
	if !ok {
		return ""
	}
	return l.Addr().String()
}

// Broadcast sends the current frames to every connected client and returns
// how many clients received them. Clients whose send buffer is full are
// disconnected.
func (s *Server) Broadcast() (int, error) {
	payload, err := s.encode(atomic.AddUint64(&s.seq, 1))
	if err != nil {
		s.logger.Error("Failed to encode frames", log.Error(err))
		return 0, err
	}

	s.clientsMx.Lock()
	defer s.clientsMx.Unlock()

	delivered := 0
	for c := range s.clients {
		select {
		case c.send <- payload:
			delivered++
		default:
			s.logger.Warn("Client too slow, disconnecting", log.String("client_id", c.id))
			s.dropLocked(c)
		}
	}

	s.logger.Debug("Broadcast frames",
		log.Uint64("seq", atomic.LoadUint64(&s.seq)),
		log.Int("clients", delivered))

	return delivered, nil
}

func (s *Server) encode(seq uint64) ([]byte, error) {
	frames := s.source.Frames()
	if frames == nil {
		frames = []sensor.Frame{}
	}
	return json.Marshal(Message{Seq: seq, Time: time.Now(), Sensors: frames})
}

// GetStats returns server statistics
func (s *Server) GetStats() Stats {
	return Stats{
		ClientCount: atomic.LoadInt64(&s.clientCount),
		Broadcasts:  atomic.LoadUint64(&s.seq),
		Running:     atomic.LoadInt32(&s.running) == 1,
	}
}
