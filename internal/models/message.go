package models

import "time"

// Message is one unit of conversation content. Immutable after creation
// except for the read flag, which is flipped in bulk on fetch.
type Message struct {
	ID             int       `db:"id" json:"id"`
	ConversationID int       `db:"conversation_id" json:"conversation_id"`
	From           int       `db:"sender_id" json:"from"`
	To             int       `db:"recipient_id" json:"to"`
	Content        string    `db:"content" json:"content"`
	IsRead         bool      `db:"is_read" json:"is_read"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// EventMessageReceived is pushed to a recipient's live sessions.
const EventMessageReceived = "message-received"

// MessageEvent is the frame written to websocket sessions.
type MessageEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
}
