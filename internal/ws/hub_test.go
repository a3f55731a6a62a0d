package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/models"
)

type fakeSession struct {
	mu     sync.Mutex
	frames [][]byte
	fail   bool
	closed bool
}

func (s *fakeSession) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("broken pipe")
	}
	s.frames = append(s.frames, data)
	return nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSession) events(t *testing.T) []models.MessageEvent {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MessageEvent, 0, len(s.frames))
	for _, frame := range s.frames {
		var event models.MessageEvent
		require.NoError(t, json.Unmarshal(frame, &event))
		out = append(out, event)
	}
	return out
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	sess := &fakeSession{}

	hub.Register(1, sess, ConnInfo{})
	require.Equal(t, 1, hub.SessionCount(1))

	hub.Unregister(1, sess)
	require.Equal(t, 0, hub.SessionCount(1))
}

func TestHubRegisterIsIdempotentPerSession(t *testing.T) {
	hub := NewHub()
	sess := &fakeSession{}

	hub.Register(1, sess, ConnInfo{})
	hub.Register(1, sess, ConnInfo{})
	require.Equal(t, 1, hub.SessionCount(1))

	delivered := hub.Push(1, models.MessageEvent{Type: models.EventMessageReceived})
	assert.Equal(t, 1, delivered)
	assert.Len(t, sess.events(t), 1)
}

func TestHubPushFansOutToAllSessions(t *testing.T) {
	hub := NewHub()
	phone := &fakeSession{}
	laptop := &fakeSession{}
	hub.Register(2, phone, ConnInfo{DeviceID: "phone"})
	hub.Register(2, laptop, ConnInfo{DeviceID: "laptop"})

	msg := models.Message{ID: 7, ConversationID: 5, From: 1, To: 2, Content: "hi"}
	delivered := hub.Push(2, models.MessageEvent{Type: models.EventMessageReceived, Message: &msg})

	require.Equal(t, 2, delivered)
	for _, sess := range []*fakeSession{phone, laptop} {
		events := sess.events(t)
		require.Len(t, events, 1)
		assert.Equal(t, models.EventMessageReceived, events[0].Type)
		require.NotNil(t, events[0].Message)
		assert.Equal(t, "hi", events[0].Message.Content)
	}
}

func TestHubPushWithNoSessionsIsSilentDrop(t *testing.T) {
	hub := NewHub()

	delivered := hub.Push(42, models.MessageEvent{Type: models.EventMessageReceived})

	assert.Equal(t, 0, delivered)
}

func TestHubPushDoesNotCrossUsers(t *testing.T) {
	hub := NewHub()
	alice := &fakeSession{}
	bob := &fakeSession{}
	hub.Register(1, alice, ConnInfo{})
	hub.Register(2, bob, ConnInfo{})

	hub.Push(2, models.MessageEvent{Type: models.EventMessageReceived})

	assert.Empty(t, alice.events(t))
	assert.Len(t, bob.events(t), 1)
}

func TestHubPushEvictsFailedSession(t *testing.T) {
	hub := NewHub()
	broken := &fakeSession{fail: true}
	hub.Register(3, broken, ConnInfo{})

	delivered := hub.Push(3, models.MessageEvent{Type: models.EventMessageReceived})

	assert.Equal(t, 0, delivered)
	assert.Equal(t, 0, hub.SessionCount(3))
	assert.True(t, broken.closed)
}
