package llm

import (
	"fmt"
	"log/slog"

	"chatbackend/internal/config"
	"chatbackend/internal/prompts"
)

// SetupClient builds the provider registry and the AI client from config.
// Providers are created lazily; missing keys surface as provider errors
// on first use, which the exchange path absorbs.
func SetupClient(cfg *config.Config, promptSet *prompts.Set, logger *slog.Logger) (*Client, error) {
	registry := NewProviderRegistry(NewProviderFactory(cfg))
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("provider registry validation failed: %w", err)
	}

	for _, p := range []struct {
		name, key, models string
	}{
		{ProviderOpenAI, cfg.OpenAIAPIKey, "gpt-*, o1*, o3*, o4*"},
		{ProviderAnthropic, cfg.AnthropicAPIKey, "claude-*"},
		{ProviderOpenRouter, cfg.OpenRouterAPIKey, "openrouter/*"},
		{ProviderGemini, cfg.GeminiAPIKey, "gemini-*"},
	} {
		if p.key != "" {
			logger.Info("provider available", "name", p.name, "models", p.models)
		}
	}

	info, err := ParseModel(cfg.DefaultModel)
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_MODEL: %w", err)
	}
	if _, err := ParseModel(cfg.TitleModel); err != nil {
		return nil, fmt.Errorf("TITLE_MODEL: %w", err)
	}
	logger.Info("ai client configured",
		"default_model", cfg.DefaultModel,
		"default_provider", info.Provider,
		"title_model", cfg.TitleModel,
		"timeout", cfg.AITimeout,
	)

	return NewClient(registry, promptSet, ClientConfig{
		DefaultModel: cfg.DefaultModel,
		TitleModel:   cfg.TitleModel,
		Timeout:      cfg.AITimeout,
	}, logger), nil
}
