package llm

import (
	"context"

	"chatbackend/internal/domain/models/llm"
)

// MessageRepository defines the interface for message data access.
// Ordering is by timestamp with ties broken by insertion order.
type MessageRepository interface {
	// Create stores a new message
	Create(ctx context.Context, msg *llm.Message) error

	// ListByChat returns up to limit messages of a chat, oldest first
	ListByChat(ctx context.Context, chatID string, limit int) ([]llm.Message, error)

	// ListRecent returns the n newest messages of a chat, newest first
	ListRecent(ctx context.Context, chatID string, n int) ([]llm.Message, error)

	// Latest returns the newest message of a chat
	// Returns domain.ErrNotFound if the chat has no messages
	Latest(ctx context.Context, chatID string) (*llm.Message, error)

	// Count returns the number of messages in a chat
	Count(ctx context.Context, chatID string) (int, error)

	// DeleteByChat removes every message of a chat and returns how many were removed
	DeleteByChat(ctx context.Context, chatID string) (int, error)
}
