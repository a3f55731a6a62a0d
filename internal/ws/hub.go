package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"messaging-service/internal/models"
	"messaging-service/internal/observability"
)

// Session is a live connection capable of receiving pushed frames.
// *websocket.Conn satisfies it; tests inject fakes.
type Session interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Pusher is the delivery-facing side of the hub.
type Pusher interface {
	Push(userID int, event models.MessageEvent) int
}

// Hub binds live sessions to user identities. A user may hold any number of
// concurrent sessions (multi-device). The hub is a low-latency shortcut for
// connected recipients, never the system of record: a push to a user with no
// sessions is silently dropped and the recipient reconciles via catch-up.
type Hub struct {
	sessions map[int]map[Session]ConnInfo
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[int]map[Session]ConnInfo)}
}

// Register binds a session to a user identity.
func (h *Hub) Register(userID int, sess Session, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[userID]; !ok {
		h.sessions[userID] = make(map[Session]ConnInfo)
	}
	h.sessions[userID][sess] = info
}

// Unregister removes a session binding.
func (h *Hub) Unregister(userID int, sess Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sessions, ok := h.sessions[userID]; ok {
		delete(sessions, sess)
		if len(sessions) == 0 {
			delete(h.sessions, userID)
		}
	}
}

// SessionCount reports the number of live sessions for a user.
func (h *Hub) SessionCount(userID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

// Push writes the event to every live session registered for the user and
// returns how many writes succeeded. Write failures evict the session; they
// are never surfaced to the caller.
func (h *Hub) Push(userID int, event models.MessageEvent) int {
	h.mu.RLock()
	targets := make(map[Session]ConnInfo, len(h.sessions[userID]))
	for sess, info := range h.sessions[userID] {
		targets[sess] = info
	}
	h.mu.RUnlock()

	payload, _ := json.Marshal(event)
	delivered := 0
	for sess, info := range targets {
		if err := sess.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			sess.Close()
			h.Unregister(userID, sess)
			h.publishSessionError(userID, info, err)
			continue
		}
		delivered++
	}
	observability.ObservePush(delivered, len(targets)-delivered)
	return delivered
}

func (h *Hub) publishSessionError(userID int, info ConnInfo, err error) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"event":       "ws_error",
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      err.Error(),
		},
		"identity": map[string]interface{}{
			"user_id":   userID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(context.Background(), "ws_events.presence", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload:   payload,
	}, headers)
	observability.IncWSEvent("ws_error")
}
