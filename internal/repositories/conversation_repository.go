package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"messaging-service/internal/models"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSelfConversation     = errors.New("cannot start conversation with self")
)

// ConversationRepository abstracts conversation persistence.
type ConversationRepository interface {
	GetOrCreate(ctx context.Context, userID int, peerID int) (models.Conversation, error)
	GetConversation(ctx context.Context, conversationID int) (models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID int, userID int) (bool, error)
	MarkRead(ctx context.Context, conversationID int, userID int) error
	RecordActivity(ctx context.Context, conversationID int, messageID int, recipientID int) error
	ListForUser(ctx context.Context, userID int) ([]models.ConversationSummary, error)
	UnreadCounts(ctx context.Context, conversationID int) (map[int]int, error)
}

// ConversationRepo is a sqlx implementation of ConversationRepository.
type ConversationRepo struct {
	db *sqlx.DB
}

// NewConversationRepo constructs a ConversationRepo.
func NewConversationRepo(db *sqlx.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

const conversationColumns = `id, user_low, user_high, last_message_id, created_at, updated_at`

// GetOrCreate returns the single conversation for the unordered user pair,
// creating it if absent. Concurrent callers converge on one row: the insert
// uses ON CONFLICT DO NOTHING against the unique pair constraint, and the
// loser re-selects the winner.
func (r *ConversationRepo) GetOrCreate(ctx context.Context, userID int, peerID int) (models.Conversation, error) {
	if userID == peerID {
		return models.Conversation{}, ErrSelfConversation
	}
	low, high := canonicalPair(userID, peerID)

	var conv models.Conversation
	err := r.db.QueryRowxContext(ctx, `INSERT INTO conversations (user_low, user_high) VALUES ($1, $2)
        ON CONFLICT (user_low, user_high) DO NOTHING
        RETURNING `+conversationColumns, low, high).StructScan(&conv)
	if errors.Is(err, sql.ErrNoRows) {
		err = r.db.GetContext(ctx, &conv, `SELECT `+conversationColumns+` FROM conversations WHERE user_low=$1 AND user_high=$2`, low, high)
	}
	if err != nil {
		return models.Conversation{}, err
	}

	// Seed zero counters so unread_counts always has an entry per participant.
	if _, err := r.db.ExecContext(ctx, `INSERT INTO conversation_unread (conversation_id, user_id)
        VALUES ($1, $2), ($1, $3) ON CONFLICT (conversation_id, user_id) DO NOTHING`, conv.ID, low, high); err != nil {
		return models.Conversation{}, err
	}

	counts, err := r.UnreadCounts(ctx, conv.ID)
	if err != nil {
		return models.Conversation{}, err
	}
	conv.UnreadCounts = counts
	return conv, nil
}

// GetConversation fetches a conversation by id.
func (r *ConversationRepo) GetConversation(ctx context.Context, conversationID int) (models.Conversation, error) {
	var conv models.Conversation
	err := r.db.GetContext(ctx, &conv, `SELECT `+conversationColumns+` FROM conversations WHERE id=$1`, conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, ErrConversationNotFound
	}
	return conv, err
}

// IsParticipant checks whether a user belongs to the conversation.
func (r *ConversationRepo) IsParticipant(ctx context.Context, conversationID int, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM conversations WHERE id=$1 AND (user_low=$2 OR user_high=$2))`, conversationID, userID)
	return exists, err
}

// MarkRead zeroes the caller's unread counter. The other participant's
// counter is untouched.
func (r *ConversationRepo) MarkRead(ctx context.Context, conversationID int, userID int) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO conversation_unread (conversation_id, user_id, unread) VALUES ($1, $2, 0)
        ON CONFLICT (conversation_id, user_id) DO UPDATE SET unread = 0`, conversationID, userID)
	return err
}

// RecordActivity points the conversation at its newest message and bumps the
// recipient's unread counter. The increment is a single upsert so the
// database applies it atomically; concurrent sends cannot lose updates.
// Message ids are serial, so the pointer update only moves forward: a late
// commit for an older message (concurrent send, backgrounded retry) still
// increments the counter but never rewinds last_message_id.
func (r *ConversationRepo) RecordActivity(ctx context.Context, conversationID int, messageID int, recipientID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE conversations SET last_message_id=$2, updated_at=NOW()
        WHERE id=$1 AND (last_message_id IS NULL OR last_message_id < $2)`, conversationID, messageID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the conversation is gone or a newer message already holds
		// the pointer. Only the former is an error.
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM conversations WHERE id=$1)`, conversationID); err != nil {
			return err
		}
		if !exists {
			return ErrConversationNotFound
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO conversation_unread (conversation_id, user_id, unread) VALUES ($1, $2, 1)
        ON CONFLICT (conversation_id, user_id) DO UPDATE SET unread = conversation_unread.unread + 1`, conversationID, recipientID); err != nil {
		return err
	}

	return tx.Commit()
}

// ListForUser returns one summary per conversation the user participates in,
// newest last message first. Conversations without messages sort last.
func (r *ConversationRepo) ListForUser(ctx context.Context, userID int) ([]models.ConversationSummary, error) {
	query := `SELECT c.id AS conversation_id,
            CASE WHEN c.user_low=$1 THEN c.user_high ELSE c.user_low END AS peer_id,
            m.content AS last_message,
            m.created_at AS last_message_time,
            COALESCE(u.unread, 0) AS unread_count
        FROM conversations c
        LEFT JOIN messages m ON m.id = c.last_message_id
        LEFT JOIN conversation_unread u ON u.conversation_id = c.id AND u.user_id = $1
        WHERE c.user_low=$1 OR c.user_high=$1
        ORDER BY m.created_at DESC NULLS LAST, c.id DESC`
	var summaries []models.ConversationSummary
	err := r.db.SelectContext(ctx, &summaries, query, userID)
	return summaries, err
}

// UnreadCounts loads the per-participant counters, filling explicit zeros for
// participants without a row yet.
func (r *ConversationRepo) UnreadCounts(ctx context.Context, conversationID int) (map[int]int, error) {
	conv, err := r.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT user_id, unread FROM conversation_unread WHERE conversation_id=$1`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[int]int{conv.UserLow: 0, conv.UserHigh: 0}
	for rows.Next() {
		var userID, unread int
		if err := rows.Scan(&userID, &unread); err != nil {
			return nil, err
		}
		counts[userID] = unread
	}
	return counts, rows.Err()
}

func canonicalPair(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
