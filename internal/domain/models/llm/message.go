package llm

import (
	"time"
)

// Sender identifies who authored a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Valid reports whether s is a known sender
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

// Message is a single chat message. Messages are immutable once stored.
type Message struct {
	ID        string                 `json:"id" db:"id" bson:"id"`
	ChatID    string                 `json:"chatId" db:"chat_id" bson:"chatId"`
	Text      string                 `json:"text" db:"text" bson:"text"`
	Sender    Sender                 `json:"sender" db:"sender" bson:"sender"`
	Timestamp time.Time              `json:"timestamp" db:"timestamp" bson:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" db:"metadata" bson:"metadata,omitempty"`
}

// MessageView is a message as rendered to clients, with the timestamp
// formatted as a clock time ("03:04 PM").
type MessageView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
	ChatID    string `json:"chatId"`
}
