package llm

import (
	"fmt"
	"strings"
)

// ModelInfo contains parsed provider and model information
type ModelInfo struct {
	Provider string // "openai", "anthropic", "openrouter", "gemini", "lorem"
	Model    string // Model identifier for that provider
}

// ParseModel extracts provider information from a model string
//
// Supported formats:
//   - "gpt-4o-mini" → {Provider: "openai", Model: "gpt-4o-mini"}
//   - "claude-haiku-4-5" → {Provider: "anthropic", Model: "claude-haiku-4-5"}
//   - "openrouter/anthropic/claude-haiku-4-5" → {Provider: "openrouter", Model: "anthropic/claude-haiku-4-5"}
//
// A "/" selects the provider explicitly (split on the first one);
// otherwise the provider is inferred from the model prefix.
func ParseModel(modelStr string) (*ModelInfo, error) {
	modelStr = strings.TrimSpace(modelStr)
	if modelStr == "" {
		return nil, fmt.Errorf("model string cannot be empty")
	}

	if provider, model, found := strings.Cut(modelStr, "/"); found {
		if provider == "" {
			return nil, fmt.Errorf("provider cannot be empty in model string: %s", modelStr)
		}
		if model == "" {
			return nil, fmt.Errorf("model cannot be empty in model string: %s", modelStr)
		}
		return &ModelInfo{Provider: strings.ToLower(provider), Model: model}, nil
	}

	provider := inferProvider(modelStr)
	if provider == "" {
		return nil, fmt.Errorf("unable to infer provider from model: %s", modelStr)
	}
	return &ModelInfo{Provider: provider, Model: modelStr}, nil
}

// inferProvider infers the provider from model name prefix
func inferProvider(model string) string {
	modelLower := strings.ToLower(model)

	switch {
	case strings.HasPrefix(modelLower, "gpt-"),
		strings.HasPrefix(modelLower, "chatgpt-"),
		strings.HasPrefix(modelLower, "o1"),
		strings.HasPrefix(modelLower, "o3"),
		strings.HasPrefix(modelLower, "o4"):
		return ProviderOpenAI
	case strings.HasPrefix(modelLower, "claude-"):
		return ProviderAnthropic
	case strings.HasPrefix(modelLower, "gemini-"):
		return ProviderGemini
	case strings.HasPrefix(modelLower, "lorem-"):
		// Mock provider for development without API keys
		return ProviderLorem
	}
	return ""
}
