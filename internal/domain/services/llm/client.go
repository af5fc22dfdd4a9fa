package llm

import (
	"context"

	llmModels "chatbackend/internal/domain/models/llm"
)

// AIClient is the completion contract the exchange path depends on.
// Implementations are stateless and safe for concurrent use. Every
// failure is a *domain.ProviderError.
type AIClient interface {
	// Complete answers req.Text in the context of req.History
	Complete(ctx context.Context, req *CompletionRequest) (string, error)

	// SuggestTitle proposes a short chat title for the first user message
	SuggestTitle(ctx context.Context, text string) (string, error)
}

// CompletionRequest carries one completion call
type CompletionRequest struct {
	Persona   string
	History   []HistoryEntry // chronological, excludes Text
	Text      string
	SessionID string
	Model     string // optional; empty selects the configured default
}

// HistoryEntry is a prior message offered to the provider as context
type HistoryEntry struct {
	Sender llmModels.Sender
	Text   string
}
