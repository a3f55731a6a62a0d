package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/models"
)

var ErrInvalidMessage = errors.New("invalid message")

// MessageRepository is the durable append-only message log.
type MessageRepository interface {
	Append(ctx context.Context, conversationID int, from int, to int, content string) (models.Message, error)
	ListByConversation(ctx context.Context, conversationID int) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID int, userID int) error
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = `id, conversation_id, sender_id, recipient_id, content, is_read, created_at`

// Append durably stores a message. Empty content and self-sends are rejected
// before anything touches the database.
func (r *MessageRepo) Append(ctx context.Context, conversationID int, from int, to int, content string) (models.Message, error) {
	if strings.TrimSpace(content) == "" || from == to {
		return models.Message{}, ErrInvalidMessage
	}

	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (conversation_id, sender_id, recipient_id, content)
        VALUES ($1, $2, $3, $4) RETURNING `+messageColumns, conversationID, from, to, content).StructScan(&msg)
	return msg, err
}

// ListByConversation returns the full message log in ascending order.
// The id column breaks created_at ties, so the order is total and stable
// between catch-up fetches and the live push stream.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, `SELECT `+messageColumns+` FROM messages
        WHERE conversation_id=$1 ORDER BY created_at ASC, id ASC`, conversationID)
	return msgs, err
}

// MarkMessagesRead flips the read flag on every unread message addressed to
// the user, in one statement.
func (r *MessageRepo) MarkMessagesRead(ctx context.Context, conversationID int, userID int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE
        WHERE conversation_id=$1 AND recipient_id=$2 AND is_read = FALSE`, conversationID, userID)
	return err
}
