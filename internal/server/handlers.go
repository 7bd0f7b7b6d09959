package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/conneroisu/lwcswitch/internal/renderer"
	"github.com/conneroisu/lwcswitch/internal/validation"
	"github.com/conneroisu/lwcswitch/internal/version"
)

// requirePath reads the absolute "path" query parameter, answering 400
// when it is missing or relative.
func requirePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "missing path parameter", http.StatusBadRequest)
		return "", false
	}
	if !filepath.IsAbs(path) {
		http.Error(w, "path must be absolute", http.StatusBadRequest)
		return "", false
	}
	return path, true
}

// handlePanel renders the panel page. Without a path it shows the
// placeholder; "dirty" lists comma-separated paths with unsaved changes.
func (s *PanelServer) handlePanel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := renderer.PanelView{LiveReload: true}
	if path := r.URL.Query().Get("path"); path != "" {
		if !filepath.IsAbs(path) {
			http.Error(w, "path must be absolute", http.StatusBadRequest)
			return
		}
		view.List = s.lookup(r.Context(), path)
		view.Dirty = parseDirty(r.URL.Query().Get("dirty"))
	}

	var buf bytes.Buffer
	if err := renderer.Panel(view).Render(r.Context(), &buf); err != nil {
		s.logger.Error(r.Context(), err, "Failed to render panel")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func parseDirty(raw string) map[string]bool {
	dirty := make(map[string]bool)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			dirty[filepath.Clean(p)] = true
		}
	}
	return dirty
}

// handleRelated returns the lookup result for ?path= as JSON. An empty
// result is still a 200 with an empty file list.
func (s *PanelServer) handleRelated(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path, ok := requirePath(w, r)
	if !ok {
		return
	}

	list := s.lookup(r.Context(), path)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(list); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to encode related files")
	}
}

// handleHealth returns the server health status for health checks
func (s *PanelServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.GetShortVersion(),
		"clients":   s.ClientCount(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to encode health response")
	}
}

func (s *PanelServer) addMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && validation.ValidateOrigin(origin, s.config.Server.AllowedOrigins, nil) == nil {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		start := time.Now()
		handler.ServeHTTP(w, r)
		s.logger.Debug(r.Context(), "Request served",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}
