package llm

import (
	"context"
)

// Roles used in provider conversations
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider is the contract every completion backend adapter implements.
type Provider interface {
	// GenerateText returns the provider's reply to the conversation
	GenerateText(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Name returns the provider name (e.g., "openai", "anthropic")
	Name() string

	// SupportsModel returns true if the provider supports the given model.
	SupportsModel(model string) bool
}

// GenerateRequest is a single provider call
type GenerateRequest struct {
	// Model is the provider-specific model identifier (no provider prefix)
	Model string

	// System is the system instruction
	System string

	// Messages holds the conversation in chronological order, ending with
	// the user message to answer
	Messages []Turn

	// SessionID identifies the conversation to providers that accept an
	// end-user identifier. Providers never rely on it for history.
	SessionID string
}

// Turn is one conversation entry in provider terms
type Turn struct {
	Role string
	Text string
}

// GenerateResponse is the provider's reply
type GenerateResponse struct {
	Text  string
	Model string
}
