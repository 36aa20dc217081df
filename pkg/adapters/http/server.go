// Package http exposes a Mosaic session manager as a JSON API over HTTP,
// with a WebSocket endpoint for live device transports.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/mosaic/internal/logging"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/schema"
	"github.com/go-chi/chi/v5"
)

// Sessions defines the session orchestration surface the server needs.
// Implemented by session.Manager.
type Sessions interface {
	Apply(ctx context.Context, sessionID string, event domain.Event) (*domain.State, error)
	Load(ctx context.Context, sessionID string) (*domain.State, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

// Server handles the HTTP and WebSocket surface of a Mosaic deployment.
type Server struct {
	sessions Sessions
	hub      *Hub
	logger   *slog.Logger
	metrics  http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts a metrics endpoint (e.g. promhttp.Handler())
// under /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the session manager.
func NewHandler(sessions Sessions, opts ...Option) http.Handler {
	server := &Server{
		sessions: sessions,
		hub:      NewHub(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}

	r.Get("/sessions", server.listSessions)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", server.getSession)
		r.Delete("/", server.deleteSession)
		r.Post("/events", server.postEvent)
		r.Get("/ws", server.serveWS)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// postEvent handles POST /sessions/{sessionID}/events.
// Body: {"type": "...", "data": {...}}. Responds with the next snapshot.
func (s *Server) postEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	event, err := schema.DecodeEventJSON(body)
	if err != nil {
		s.logger.Warn("event rejected at decode", "session_id", sessionID, "err", err)
		s.writeError(w, err)
		return
	}

	state, err := s.sessions.Apply(r.Context(), sessionID, event)
	if err != nil {
		s.logger.Warn("event rejected by reducer", "session_id", sessionID, "type", event.Type, "err", err)
		s.writeError(w, err)
		return
	}

	s.broadcast(sessionID, state)
	s.writeJSON(w, http.StatusOK, state)
}

// getSession handles GET /sessions/{sessionID}.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// listSessions handles GET /sessions.
func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// deleteSession handles DELETE /sessions/{sessionID}.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.sessions.Delete(r.Context(), sessionID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) broadcast(sessionID string, state *domain.State) {
	payload, err := json.Marshal(snapshotMessage{Kind: "snapshot", State: state})
	if err != nil {
		s.logger.Error("snapshot broadcast encode failed", "session_id", sessionID, "err", err)
		return
	}
	s.hub.Broadcast(sessionID, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError maps domain errors onto HTTP status codes:
// malformed envelopes are 400, rejected transitions 422, missing sessions 404.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validation *schema.ValidationError
	var aggregate *schema.AggregateError
	switch {
	case errors.As(err, &validation), errors.As(err, &aggregate), errors.Is(err, domain.ErrInvalidPayload):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDirection), errors.Is(err, domain.ErrUnhandledActionType):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrClientNotFound):
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
