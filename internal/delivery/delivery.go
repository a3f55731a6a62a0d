// Package delivery implements the send pipeline: validate, persist, update
// conversation metadata, push to the recipient's live sessions, acknowledge.
package delivery

import (
	"context"
	"log"
	"time"

	"messaging-service/internal/models"
	"messaging-service/internal/observability"
	"messaging-service/internal/repositories"
	"messaging-service/internal/ws"
)

// Service drives one send from validation through acknowledgement.
type Service struct {
	messages      repositories.MessageRepository
	conversations repositories.ConversationRepository
	pusher        ws.Pusher

	retryAttempts int
	retryBase     time.Duration
}

// NewService constructs a Service with default retry policy for the
// unread-counter update.
func NewService(messages repositories.MessageRepository, conversations repositories.ConversationRepository, pusher ws.Pusher) *Service {
	return &Service{
		messages:      messages,
		conversations: conversations,
		pusher:        pusher,
		retryAttempts: 3,
		retryBase:     200 * time.Millisecond,
	}
}

// Send persists the message, records conversation activity for the recipient
// and pushes the persisted record to the recipient's live sessions.
//
// A persistence failure aborts the send and is returned to the caller:
// nothing else observes the message. Once the message is durable, a failed
// counter update degrades to a background retry and a failed or absent push
// is silently ignored; neither ever fails the send.
func (s *Service) Send(ctx context.Context, conversationID int, from int, to int, content string) (models.Message, error) {
	msg, err := s.messages.Append(ctx, conversationID, from, to, content)
	if err != nil {
		return models.Message{}, err
	}
	observability.IncMessageSent()

	if err := s.conversations.RecordActivity(ctx, conversationID, msg.ID, to); err != nil {
		log.Printf("record activity failed for conversation %d, retrying: %v", conversationID, err)
		go s.retryRecordActivity(conversationID, msg.ID, to)
	}

	s.pusher.Push(to, models.MessageEvent{Type: models.EventMessageReceived, Message: &msg})

	return msg, nil
}

// retryRecordActivity retries the counter update with doubling backoff. It
// runs detached from the request: the update must complete even if the
// sender's connection is gone. A dropped increment is a wrong badge count,
// so exhaustion is counted and logged loudly.
func (s *Service) retryRecordActivity(conversationID int, messageID int, recipientID int) {
	backoff := s.retryBase
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		time.Sleep(backoff)
		backoff *= 2

		err := s.conversations.RecordActivity(context.Background(), conversationID, messageID, recipientID)
		if err == nil {
			return
		}
		log.Printf("record activity retry %d/%d failed for conversation %d: %v", attempt, s.retryAttempts, conversationID, err)
	}
	observability.IncUnreadRetryFailure()
	log.Printf("unread counter update lost for conversation %d recipient %d after %d retries", conversationID, recipientID, s.retryAttempts)
}
