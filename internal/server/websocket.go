package server

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/lwcswitch/internal/renderer"
	"github.com/conneroisu/lwcswitch/internal/validation"
	"github.com/conneroisu/lwcswitch/internal/watcher"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

func (s *PanelServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	path, ok := requirePath(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// checkOrigin has already run against the configured origins.
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "WebSocket upgrade error")
		return
	}

	list := s.lookup(s.baseCtx, path)
	client := &Client{
		conn:    conn,
		send:    make(chan []byte, 16),
		trigger: list.Trigger,
		dir:     list.Directory,
	}

	if r.URL.Query().Get(renderer.LiveReloadParam) == "" {
		client.send <- s.encodeUpdate(list)
	}

	if !s.register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	go s.writePump(client)
	s.readPump(client)
}

// checkOrigin validates the request origin. Same-host origins, loopback
// origins on the server port and configured origins are allowed.
func (s *PanelServer) checkOrigin(r *http.Request) bool {
	port := strconv.Itoa(s.config.Server.Port)
	allowedHosts := []string{
		r.Host,
		s.Addr(),
		"localhost:" + port,
		"127.0.0.1:" + port,
	}
	err := validation.ValidateOrigin(r.Header.Get("Origin"), s.config.Server.AllowedOrigins, allowedHosts)
	if err != nil {
		s.logger.Debug(r.Context(), "Rejected origin", "origin", r.Header.Get("Origin"), "error", err.Error())
		return false
	}
	return true
}

// register adds client and makes sure its component folder is watched.
// It reports false once the server is shutting down.
func (s *PanelServer) register(client *Client) bool {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if s.baseCtx.Err() != nil {
		return false
	}
	s.clients[client] = true

	if client.dir != "" {
		if _, ok := s.watchers[client.dir]; !ok {
			w, err := s.startWatcher(client.dir)
			if err != nil {
				s.logger.Warn(s.baseCtx, err, "Cannot watch component", "directory", client.dir)
			} else {
				s.watchers[client.dir] = w
			}
		}
	}

	s.logger.Debug(s.baseCtx, "Client connected", "trigger", client.trigger, "total", len(s.clients))
	return true
}

// unregister removes client and stops watching its folder when no other
// client needs it.
func (s *PanelServer) unregister(client *Client) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	if !s.clients[client] {
		return
	}
	delete(s.clients, client)
	close(client.send)

	if client.dir != "" && !s.watchedByAnyLocked(client.dir) {
		if w, ok := s.watchers[client.dir]; ok {
			if err := w.Stop(); err != nil {
				s.logger.Warn(s.baseCtx, err, "Cannot stop watcher", "directory", client.dir)
			}
			delete(s.watchers, client.dir)
		}
	}

	s.logger.Debug(s.baseCtx, "Client disconnected", "total", len(s.clients))
}

func (s *PanelServer) watchedByAnyLocked(dir string) bool {
	for c := range s.clients {
		if c.dir == dir {
			return true
		}
	}
	return false
}

func (s *PanelServer) startWatcher(dir string) (*watcher.FileWatcher, error) {
	w, err := watcher.NewFileWatcher(s.config.Watch.Debounce, s.logger)
	if err != nil {
		return nil, err
	}
	w.AddFilter(watcher.NoHiddenFilter)
	w.AddHandler(func(events []watcher.ChangeEvent) error {
		s.notifyDirectory(filepath.Clean(dir))
		return nil
	})
	if err := w.AddComponent(dir); err != nil {
		_ = w.Stop()
		return nil, err
	}
	if err := w.Start(s.baseCtx); err != nil {
		_ = w.Stop()
		return nil, err
	}
	return w, nil
}

// notifyDirectory runs a fresh lookup for every client of dir and queues
// the result. Clients that cannot keep up miss the update; the next change
// brings them current.
func (s *PanelServer) notifyDirectory(dir string) {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()

	for client := range s.clients {
		if client.dir != dir {
			continue
		}
		msg := s.encodeUpdate(s.lookup(s.baseCtx, client.trigger))
		select {
		case client.send <- msg:
		default:
			s.logger.Debug(s.baseCtx, "Client send buffer full", "trigger", client.trigger)
		}
	}
}

// readPump drains the connection so control frames are processed. It
// returns when the peer goes away.
func (s *PanelServer) readPump(client *Client) {
	defer func() {
		s.unregister(client)
		client.conn.Close(websocket.StatusNormalClosure, "")
	}()

	client.conn.SetReadLimit(maxMessageSize)

	for {
		readCtx, cancel := context.WithTimeout(s.baseCtx, pongWait)
		_, _, err := client.conn.Read(readCtx)
		cancel()

		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && s.baseCtx.Err() == nil {
				s.logger.Debug(s.baseCtx, "WebSocket read ended", "error", err.Error())
			}
			return
		}
	}
}

// writePump pumps messages to the websocket connection
func (s *PanelServer) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := client.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				s.logger.Debug(s.baseCtx, "WebSocket write error", "error", err.Error())
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := client.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
