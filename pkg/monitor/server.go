package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"digital.vasic.coccyx/pkg/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 64
)

// Message is the envelope written to WebSocket clients. Type is
// "dashboard" for the snapshot sent on connect and "event" for
// every run event after that.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithServerLogger sets the logger for connection events.
func WithServerLogger(l logging.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// Server broadcasts run events to WebSocket clients and serves
// the dashboard snapshot over HTTP.
type Server struct {
	mu        sync.RWMutex
	collector *EventCollector
	dashboard *Dashboard
	clients   map[*client]struct{}
	upgrader  websocket.Upgrader
	metrics   http.Handler
	logger    logging.Logger
	server    *http.Server
	listener  net.Listener
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a Server fed by collector. Events are
// folded into dashboard before being broadcast.
func NewServer(
	collector *EventCollector,
	dashboard *Dashboard,
	opts ...ServerOption,
) *Server {
	s := &Server{
		collector: collector,
		dashboard: dashboard,
		clients:   make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}

	collector.OnEvent(func(event RunEvent) {
		s.dashboard.UpdateFromEvent(event)
		data, err := encode("event", event)
		if err != nil {
			s.logger.Warn("monitor_encode_failed",
				logging.ErrorField(err))
			return
		}
		s.broadcast(data)
	})
	return s
}

// Handler returns the HTTP handler serving /ws, /dashboard,
// /health and, when configured, /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	return mux
}

// Listen binds addr. Call Serve to start accepting.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("monitor listen %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve accepts connections until ctx is done or Stop is called.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.RLock()
	srv, ln := s.server, s.listener
	s.mu.RUnlock()
	if srv == nil {
		return errors.New("monitor server: Listen not called")
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("monitor server: %w", err)
	}
	return nil
}

// Stop closes every client and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
	srv := s.server
	s.mu.Unlock()

	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("monitor_upgrade_failed", logging.ErrorField(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	if data, err := encode("dashboard", s.dashboard.Snapshot()); err == nil {
		c.send <- data
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.logger.Debug("monitor_client_connected",
		logging.StringField("remote", r.RemoteAddr))

	go s.writePump(c)
	s.readPump(c)
}

// readPump discards client messages and unregisters the client
// when the connection closes.
func (s *Server) readPump(c *client) {
	defer s.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
	_ = c.conn.Close()
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.dashboard.Snapshot())
}

func (s *Server) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Client too slow, skip
		}
	}
}

func encode(kind string, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: kind, Data: payload})
}
