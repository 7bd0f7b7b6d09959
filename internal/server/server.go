// Package server serves the component panel over HTTP. Browsers and editor
// webviews load the panel page, query the related files of any component
// file as JSON, and subscribe over a WebSocket to receive a fresh result
// whenever the component folder changes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/lwcswitch/internal/config"
	"github.com/conneroisu/lwcswitch/internal/logging"
	"github.com/conneroisu/lwcswitch/internal/scanner"
	"github.com/conneroisu/lwcswitch/internal/types"
	"github.com/conneroisu/lwcswitch/internal/watcher"
)

// Client represents a WebSocket client subscribed to one file
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	trigger string
	dir     string
}

// PanelServer serves the panel with live updates
type PanelServer struct {
	config       *config.Config
	scanner      *scanner.ComponentScanner
	logger       logging.Logger
	httpServer   *http.Server
	serverMutex  sync.RWMutex
	clients      map[*Client]bool
	watchers     map[string]*watcher.FileWatcher
	clientsMutex sync.RWMutex
	baseCtx      context.Context
	cancel       context.CancelFunc
	shutdownOnce sync.Once
}

// UpdateMessage is pushed to subscribed clients
type UpdateMessage struct {
	Type      string                `json:"type"`
	List      *types.RankedFileList `json:"list,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// MessageTypeRelated marks a message that carries a lookup result.
const MessageTypeRelated = "related"

// New creates a panel server. A nil logger discards output.
func New(cfg *config.Config, sc *scanner.ComponentScanner, logger logging.Logger) *PanelServer {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if sc == nil {
		sc = scanner.NewComponentScanner(logger)
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &PanelServer{
		config:   cfg,
		scanner:  sc,
		logger:   logger.WithComponent("server"),
		clients:  make(map[*Client]bool),
		watchers: make(map[string]*watcher.FileWatcher),
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Addr returns the configured listen address.
func (s *PanelServer) Addr() string {
	return net.JoinHostPort(s.config.Server.Host, fmt.Sprintf("%d", s.config.Server.Port))
}

// Handler returns the HTTP handler with every route and middleware
// installed.
func (s *PanelServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/related", s.handleRelated)
	mux.HandleFunc("/", s.handlePanel)
	return s.addMiddleware(mux)
}

// Start listens on the configured address and blocks until the server is
// shut down or ctx is cancelled.
func (s *PanelServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until the server is shut down or
// ctx is cancelled.
func (s *PanelServer) Serve(ctx context.Context, listener net.Listener) error {
	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				s.logger.Warn(shutdownCtx, err, "Shutdown failed")
			}
		case <-s.baseCtx.Done():
		}
	}()

	s.logger.Info(ctx, "Panel server listening", "addr", listener.Addr().String())
	if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and cleans up resources
func (s *PanelServer) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "Shutting down panel server")
		s.cancel()

		s.clientsMutex.Lock()
		for client := range s.clients {
			close(client.send)
		}
		s.clients = make(map[*Client]bool)
		for dir, w := range s.watchers {
			if err := w.Stop(); err != nil {
				s.logger.Warn(ctx, err, "Cannot stop watcher", "directory", dir)
			}
		}
		s.watchers = make(map[string]*watcher.FileWatcher)
		s.clientsMutex.Unlock()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()

		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}

// ClientCount returns the number of connected WebSocket clients.
func (s *PanelServer) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

func (s *PanelServer) lookup(ctx context.Context, path string) *types.RankedFileList {
	return s.scanner.Lookup(ctx, path)
}

func (s *PanelServer) encodeUpdate(list *types.RankedFileList) []byte {
	data, err := json.Marshal(UpdateMessage{
		Type:      MessageTypeRelated,
		List:      list,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error(s.baseCtx, err, "Failed to marshal update")
		return []byte(`{"type":"related"}`)
	}
	return data
}
