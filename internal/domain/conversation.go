package domain

import (
	"time"
)

// Conversation is the single record for an unordered pair of users.
// ParticipantOne always sorts before ParticipantTwo, so {A, B} and
// {B, A} resolve to the same row.
type Conversation struct {
	ID             int64     `json:"id"`
	ParticipantOne string    `json:"participant_one"`
	ParticipantTwo string    `json:"participant_two"`
	CreatedAt      time.Time `json:"created_at"`
}

// Involves reports whether username is one of the two participants.
func (c *Conversation) Involves(username string) bool {
	return c.ParticipantOne == username || c.ParticipantTwo == username
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Recipient      string    `json:"recipient"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
