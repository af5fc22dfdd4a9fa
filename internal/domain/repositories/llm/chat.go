package llm

import (
	"context"
	"time"

	"chatbackend/internal/domain/models/llm"
)

// ChatPatch lists the chat fields an update may change. Nil fields are
// left untouched; UpdatedAt is always written.
type ChatPatch struct {
	Title        *string
	MessageCount *int
	UpdatedAt    time.Time
}

// ChatRepository defines the interface for chat data access
type ChatRepository interface {
	// Create stores a new chat
	Create(ctx context.Context, chat *llm.Chat) error

	// Get retrieves a chat by ID
	// Returns domain.ErrNotFound if not found
	Get(ctx context.Context, chatID string) (*llm.Chat, error)

	// List returns up to limit chats, most recently updated first
	List(ctx context.Context, limit int) ([]llm.Chat, error)

	// Update applies patch to a chat
	// Returns domain.ErrNotFound if no chat matched
	Update(ctx context.Context, chatID string, patch ChatPatch) error

	// Delete removes a chat row only; callers delete messages first
	// Returns domain.ErrNotFound if nothing was deleted
	Delete(ctx context.Context, chatID string) error
}
