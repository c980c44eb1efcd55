// Package server exposes the snapshot store and action executor over a
// minimal HTTP API, plus an MCP transport for agent clients.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wsyqhh/Accessibility-Service/internal/action"
	"github.com/wsyqhh/Accessibility-Service/internal/platform"
	"github.com/wsyqhh/Accessibility-Service/internal/snapshot"
)

// Server routes HTTP requests to the snapshot store and the executor.
type Server struct {
	store *snapshot.Store
	exec  *action.Executor
	shots platform.Screenshotter
	log   *slog.Logger
	http  *http.Server
}

// New builds a Server bound to addr. shots may be nil; the screenshot
// endpoint then reports capture as unavailable.
func New(addr string, store *snapshot.Store, exec *action.Executor, shots platform.Screenshotter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{store: store, exec: exec, shots: shots, log: log}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.notFound)
	mux.HandleFunc("/health", s.method(http.MethodGet, s.handleHealth))
	mux.HandleFunc("/screen", s.method(http.MethodGet, s.handleScreen))
	mux.HandleFunc("/screenshot", s.method(http.MethodGet, s.handleScreenshot))
	mux.HandleFunc("/click", s.method(http.MethodPost, s.handleClick))
	mux.HandleFunc("/tap", s.method(http.MethodPost, s.handleTap))
	mux.HandleFunc("/swipe", s.method(http.MethodPost, s.handleSwipe))
	mux.HandleFunc("/key", s.method(http.MethodPost, s.handleKey))
	return s.withLogging(s.withRecovery(mux))
}

// ListenAndServe blocks serving requests until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown stops accepting connections and lets in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// method gates a route on one HTTP method. Anything else is an unmatched
// method+path combination and gets the same 404 as an unknown path.
func (s *Server) method(want string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != want {
			s.notFound(w, r)
			return
		}
		h(w, r)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found: " + r.Method + " " + r.URL.Path,
	})
}

// withRecovery turns a handler panic into a 500 with a diagnostic body. This
// is the only source of 500s for action routes; executor failures are
// ordinary ok=false responses.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("handler panic", "path", r.URL.Path, "panic", rec)
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"error": "internal error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
