package models

import "time"

// Conversation pairs exactly two users. The pair is stored canonicalized
// (UserLow < UserHigh) so the unique constraint covers both orderings.
type Conversation struct {
	ID            int       `db:"id" json:"id"`
	UserLow       int       `db:"user_low" json:"user_low"`
	UserHigh      int       `db:"user_high" json:"user_high"`
	LastMessageID *int      `db:"last_message_id" json:"last_message_id,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	// UnreadCounts carries an explicit entry per participant, zero included.
	UnreadCounts map[int]int `json:"unread_counts"`
}

// Participants returns both user ids.
func (c Conversation) Participants() (int, int) {
	return c.UserLow, c.UserHigh
}

// HasParticipant reports whether userID belongs to the conversation.
func (c Conversation) HasParticipant(userID int) bool {
	return c.UserLow == userID || c.UserHigh == userID
}

// PeerOf returns the other participant's id.
func (c Conversation) PeerOf(userID int) int {
	if c.UserLow == userID {
		return c.UserHigh
	}
	return c.UserLow
}

// ConversationSummary is the per-user projection for the conversation list.
type ConversationSummary struct {
	ConversationID  int        `db:"conversation_id" json:"conversation_id"`
	PeerID          int        `db:"peer_id" json:"peer_id"`
	PeerUsername    string     `json:"peer_username,omitempty"`
	PeerDisplayPic  string     `json:"peer_display_picture,omitempty"`
	LastMessage     *string    `db:"last_message" json:"last_message,omitempty"`
	LastMessageTime *time.Time `db:"last_message_time" json:"last_message_time,omitempty"`
	UnreadCount     int        `db:"unread_count" json:"unread_count"`
}
