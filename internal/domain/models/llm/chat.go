package llm

import (
	"time"
)

// DefaultChatTitle is assigned to chats created without a title and used
// when a generated title is unusable.
const DefaultChatTitle = "New Chat"

// Chat represents a chat session
type Chat struct {
	ID           string    `json:"id" db:"id" bson:"id"`
	Title        string    `json:"title" db:"title" bson:"title"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" bson:"updatedAt"`
	MessageCount int       `json:"messageCount" db:"message_count" bson:"messageCount"`
}

// ChatSummary is the list view of a chat. Timestamp is a relative age
// ("5 min ago") computed at read time from UpdatedAt.
type ChatSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Preview      string `json:"preview"`
	Timestamp    string `json:"timestamp"`
	MessageCount int    `json:"messageCount"`
}

// ChatDetail is a chat with its full message history
type ChatDetail struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}
