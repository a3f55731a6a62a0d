package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/mocks"
)

func TestEmitPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	var published AuditEnvelope
	publisher.On("Publish", mock.Anything, "audit_log.messaging", mock.AnythingOfType("telemetry.AuditEnvelope")).
		Run(func(args mock.Arguments) { published = args.Get(2).(AuditEnvelope) }).
		Return(nil)

	emitter := NewAuditEmitter(publisher, "audit_log.messaging", "messaging-service", "test")
	userID := int64(42)
	emitter.Emit(context.Background(), "info", "conversation created", "req-1", &userID)

	publisher.AssertExpectations(t)
	assert.Equal(t, 1, published.SchemaVersion)
	assert.Equal(t, "audit_log", published.EventType)
	assert.Equal(t, "messaging-service", published.Service)
	assert.Equal(t, "test", published.Environment)
	assert.Equal(t, "req-1", published.RequestID)
	require.NotNil(t, published.UserID)
	assert.Equal(t, "42", *published.UserID)
	assert.Equal(t, "info", published.Payload.Level)
	assert.Equal(t, "conversation created", published.Payload.Text)
	assert.NotEmpty(t, published.OccurredAt)
}

func TestEmitOmitsUserIDWhenAnonymous(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	var published AuditEnvelope
	publisher.On("Publish", mock.Anything, "audit_log.messaging", mock.AnythingOfType("telemetry.AuditEnvelope")).
		Run(func(args mock.Arguments) { published = args.Get(2).(AuditEnvelope) }).
		Return(nil)

	emitter := NewAuditEmitter(publisher, "audit_log.messaging", "messaging-service", "test")
	emitter.Emit(context.Background(), "warn", "token rejected", "req-2", nil)

	publisher.AssertExpectations(t)
	assert.Nil(t, published.UserID)
}

func TestEmitSwallowsPublishError(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	publisher.On("Publish", mock.Anything, "audit_log.messaging", mock.Anything).
		Return(errors.New("broker gone"))

	emitter := NewAuditEmitter(publisher, "audit_log.messaging", "messaging-service", "test")
	// Audit is best-effort; a broker failure must not reach the caller.
	emitter.Emit(context.Background(), "info", "message sent", "req-3", nil)

	publisher.AssertExpectations(t)
}

func TestEmitWithoutPublisherIsNoop(t *testing.T) {
	emitter := NewAuditEmitter(nil, "audit_log.messaging", "messaging-service", "test")
	emitter.Emit(context.Background(), "info", "ignored", "req-4", nil)

	var missing *AuditEmitter
	missing.Emit(context.Background(), "info", "ignored", "req-5", nil)
}
