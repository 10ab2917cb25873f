package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zeusync/sweepsensor/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// client is one WebSocket subscriber. send is closed when the client is dropped.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.config.MaxClients > 0 && int(atomic.LoadInt64(&s.clientCount)) >= s.config.MaxClients {
		s.logger.Warn("Maximum clients reached, rejecting connection",
			log.String("remote_addr", r.RemoteAddr))
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", log.Error(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, max(s.config.SendBufferSize, 1)),
	}

	// the first message is the current state so a new viewer does not wait for a tick
	payload, err := s.encode(atomic.LoadUint64(&s.seq))
	if err != nil {
		s.logger.Error("Failed to encode frames", log.Error(err))
		_ = conn.Close()
		return
	}
	c.send <- payload

	if !s.register(c) {
		_ = conn.Close()
		return
	}

	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		s.writePump(c)
	}()

	s.readPump(c)
}

// register adds c unless the server is stopping.
func (s *Server) register(c *client) bool {
	s.clientsMx.Lock()
	defer s.clientsMx.Unlock()

	select {
	case <-s.stopChan:
		return false
	default:
	}

	s.clients[c] = struct{}{}
	atomic.AddInt64(&s.clientCount, 1)

	s.logger.Info("Client connected",
		log.String("client_id", c.id),
		log.String("remote_addr", c.conn.RemoteAddr().String()),
		log.Int("total_clients", len(s.clients)))
	return true
}

func (s *Server) unregister(c *client) {
	s.clientsMx.Lock()
	defer s.clientsMx.Unlock()
	s.dropLocked(c)
}

// dropLocked removes c and closes its send channel. clientsMx must be held.
func (s *Server) dropLocked(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
	atomic.AddInt64(&s.clientCount, -1)

	s.logger.Info("Client disconnected",
		log.String("client_id", c.id),
		log.Int("total_clients", len(s.clients)))
}

// readPump discards client messages and keeps the pong deadline fresh. It
// returns when the connection fails or closes.
func (s *Server) readPump(c *client) {
	defer s.unregister(c)

	c.conn.SetReadLimit(s.config.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("Client read failed", log.String("client_id", c.id), log.Error(err))
			}
			return
		}
	}
}

// writePump owns all writes to the connection.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.Debug("Client write failed", log.String("client_id", c.id), log.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
