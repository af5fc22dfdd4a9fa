package llm

import (
	"context"

	llmModels "chatbackend/internal/domain/models/llm"
)

// ExchangeService runs one user-message-in, AI-message-out round trip
type ExchangeService interface {
	Exchange(ctx context.Context, req *ExchangeRequest) (*ExchangeResult, error)
}

// ExchangeRequest is the body of POST /chats/{id}/messages. ChatID comes
// from the path.
type ExchangeRequest struct {
	ChatID    string `json:"-"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	Model     string `json:"model,omitempty"`
}

// ExchangeResult holds both persisted messages
type ExchangeResult struct {
	UserMessage llmModels.MessageView `json:"userMessage"`
	AIResponse  llmModels.MessageView `json:"aiResponse"`
}
