package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const writeDeadline = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Devices connect from app webviews and local networks; origin checks
	// belong to the deployment's proxy, not here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// snapshotMessage is pushed to every session subscriber after each applied
// event.
type snapshotMessage struct {
	Kind  string        `json:"kind"`
	State *domain.State `json:"state"`
}

type errorMessage struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// subscriber wraps one websocket connection. Writes are guarded by a mutex
// and a deadline so one stuck device cannot block the broadcast fan-out.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks websocket subscribers per session and fans out snapshots.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*subscriber]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*subscriber]bool),
	}
}

func (h *Hub) add(sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.sessions[sessionID]
	if !ok {
		subs = make(map[*subscriber]bool)
		h.sessions[sessionID] = subs
	}
	subs[sub] = true
}

func (h *Hub) remove(sessionID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.sessions, sessionID)
	}
}

// Broadcast sends payload to every subscriber of the session. Failed writes
// are dropped silently; the read loop notices the dead connection.
func (h *Hub) Broadcast(sessionID string, payload []byte) {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.sessions[sessionID]))
	for sub := range h.sessions[sessionID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		_ = sub.write(payload)
	}
}

// serveWS handles GET /sessions/{sessionID}/ws.
//
// Query parameters bind the socket to a device: ?client=<id>&width=w&height=h
// applies CONNECT on join and DISCONNECT when the socket closes. Without a
// client binding the socket is an observer (e.g. a canvas renderer).
// Messages on the socket are event envelopes, answered by broadcasting the
// new snapshot to all subscribers of the session.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session_id", sessionID, "err", err)
		return
	}
	sub := &subscriber{conn: conn}
	s.hub.add(sessionID, sub)

	clientID := r.URL.Query().Get("client")
	if clientID != "" {
		connect, err := schema.DecodeEvent(map[string]any{
			"type": string(domain.EventConnect),
			"data": map[string]any{
				"id": clientID,
				"size": map[string]any{
					"width":  r.URL.Query().Get("width"),
					"height": r.URL.Query().Get("height"),
				},
			},
		})
		if err == nil {
			if state, applyErr := s.sessions.Apply(r.Context(), sessionID, connect); applyErr == nil {
				s.broadcast(sessionID, state)
			} else {
				err = applyErr
			}
		}
		if err != nil {
			s.writeSocketError(sub, err)
			s.logger.Warn("websocket connect rejected", "session_id", sessionID, "client", clientID, "err", err)
		}
	}

	defer func() {
		s.hub.remove(sessionID, sub)
		_ = conn.Close()
		if clientID == "" {
			return
		}
		// The device is gone; its screen leaves the canvas with it.
		ctx := context.Background()
		if state, err := s.sessions.Apply(ctx, sessionID, domain.NewDisconnectEvent(domain.ClientID(clientID))); err == nil {
			s.broadcast(sessionID, state)
		} else {
			s.logger.Warn("websocket disconnect cleanup failed", "session_id", sessionID, "client", clientID, "err", err)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		event, err := schema.DecodeEventJSON(message)
		if err != nil {
			s.writeSocketError(sub, err)
			continue
		}

		state, err := s.sessions.Apply(r.Context(), sessionID, event)
		if err != nil {
			s.writeSocketError(sub, err)
			continue
		}
		s.broadcast(sessionID, state)
	}
}

func (s *Server) writeSocketError(sub *subscriber, err error) {
	payload, marshalErr := json.Marshal(errorMessage{Kind: "error", Error: err.Error()})
	if marshalErr != nil {
		return
	}
	_ = sub.write(payload)
}
