package llm

import (
	"context"

	llmModels "chatbackend/internal/domain/models/llm"
)

// ChatService defines the CRUD operations on chats
type ChatService interface {
	// CreateChat creates a chat; a blank title becomes "New Chat"
	CreateChat(ctx context.Context, req *CreateChatRequest) (*llmModels.Chat, error)

	// ListChats returns summaries, most recently active first
	ListChats(ctx context.Context) ([]llmModels.ChatSummary, error)

	// GetChat returns a chat with its messages
	GetChat(ctx context.Context, chatID string) (*llmModels.ChatDetail, error)

	// UpdateChat renames a chat
	UpdateChat(ctx context.Context, chatID string, req *UpdateChatRequest) (*llmModels.Chat, error)

	// DeleteChat removes a chat and all its messages
	DeleteChat(ctx context.Context, chatID string) error

	// ListMessages returns a chat's messages rendered for display
	ListMessages(ctx context.Context, chatID string) ([]llmModels.MessageView, error)
}

// CreateChatRequest is the DTO for creating a new chat
type CreateChatRequest struct {
	Title string `json:"title"`
}

// UpdateChatRequest is the DTO for updating a chat
type UpdateChatRequest struct {
	Title string `json:"title"`
}
