package llm

import (
	"context"
	"fmt"

	"github.com/haowjy/meridian-llm-go/providers/anthropic"
	"github.com/haowjy/meridian-llm-go/providers/lorem"
	"github.com/haowjy/meridian-llm-go/providers/openrouter"

	"chatbackend/internal/config"
	domainllm "chatbackend/internal/domain/services/llm"
	"chatbackend/internal/service/llm/adapters"
)

// Provider names accepted in model strings
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderLorem      = "lorem"
)

// ProviderCreator builds provider instances by name
type ProviderCreator interface {
	CreateProvider(ctx context.Context, providerName string) (domainllm.Provider, error)
}

// ProviderFactory creates provider adapters from configured API keys
type ProviderFactory struct {
	config *config.Config
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{config: cfg}
}

// CreateProvider returns a new adapter for providerName
func (f *ProviderFactory) CreateProvider(ctx context.Context, providerName string) (domainllm.Provider, error) {
	switch providerName {
	case ProviderOpenAI:
		if f.config.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return adapters.NewOpenAIAdapter(f.config.OpenAIAPIKey, f.config.OpenAIBaseURL), nil

	case ProviderAnthropic:
		if f.config.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		provider, err := anthropic.NewProvider(f.config.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic provider: %w", err)
		}
		return adapters.NewMeridianAdapter(provider), nil

	case ProviderOpenRouter:
		if f.config.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY environment variable not set")
		}
		provider, err := openrouter.NewProvider(f.config.OpenRouterAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenRouter provider: %w", err)
		}
		return adapters.NewMeridianAdapter(provider), nil

	case ProviderGemini:
		if f.config.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
		return adapters.NewGeminiAdapter(ctx, f.config.GeminiAPIKey)

	case ProviderLorem:
		// No API key; generates placeholder text
		return adapters.NewMeridianAdapter(lorem.NewProvider()), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}
