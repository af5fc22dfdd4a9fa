package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	domainllm "chatbackend/internal/domain/services/llm"
	"chatbackend/internal/prompts"
)

const (
	opComplete     = "complete"
	opSuggestTitle = "suggest_title"
)

// ClientConfig tunes model selection and the per-call deadline
type ClientConfig struct {
	DefaultModel string
	TitleModel   string
	Timeout      time.Duration
}

// Client implements domainllm.AIClient on top of the provider registry.
// It holds no per-conversation state.
type Client struct {
	registry *ProviderRegistry
	prompts  *prompts.Set
	config   ClientConfig
	logger   *slog.Logger
}

// NewClient creates an AI client
func NewClient(registry *ProviderRegistry, promptSet *prompts.Set, cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.TitleModel == "" {
		cfg.TitleModel = cfg.DefaultModel
	}
	return &Client{
		registry: registry,
		prompts:  promptSet,
		config:   cfg,
		logger:   logger,
	}
}

var _ domainllm.AIClient = (*Client)(nil)

// Complete answers req.Text with req.Persona as system instruction and
// req.History as prior turns.
func (c *Client) Complete(ctx context.Context, req *domainllm.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.config.DefaultModel
	}

	turns := make([]domainllm.Turn, 0, len(req.History)+1)
	for _, entry := range req.History {
		role := domainllm.RoleUser
		if entry.Sender == llmModels.SenderAI {
			role = domainllm.RoleAssistant
		}
		turns = append(turns, domainllm.Turn{Role: role, Text: entry.Text})
	}
	turns = append(turns, domainllm.Turn{Role: domainllm.RoleUser, Text: req.Text})

	return c.generate(ctx, opComplete, model, &domainllm.GenerateRequest{
		System:    req.Persona,
		Messages:  turns,
		SessionID: req.SessionID,
	})
}

// SuggestTitle asks the title model for a short title and cleans it up.
func (c *Client) SuggestTitle(ctx context.Context, text string) (string, error) {
	raw, err := c.generate(ctx, opSuggestTitle, c.config.TitleModel, &domainllm.GenerateRequest{
		System:   c.prompts.Title.System,
		Messages: []domainllm.Turn{{Role: domainllm.RoleUser, Text: c.prompts.TitleRequest(text)}},
	})
	if err != nil {
		return "", err
	}

	title := CleanTitle(raw)
	if title == "" {
		return "", domain.NewProviderError("", opSuggestTitle, "provider returned a blank title", nil)
	}
	return title, nil
}

// generate resolves the model to a provider and makes one bounded call.
// req.Model is filled in here.
func (c *Client) generate(ctx context.Context, op, model string, req *domainllm.GenerateRequest) (string, error) {
	info, err := ParseModel(model)
	if err != nil {
		return "", domain.NewProviderError("", op, "invalid model", err)
	}

	provider, err := c.registry.GetProvider(ctx, info.Provider)
	if err != nil {
		return "", domain.NewProviderError(info.Provider, op, "provider unavailable", err)
	}
	req.Model = info.Model

	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := provider.GenerateText(callCtx, req)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", domain.NewProviderError(info.Provider, op, fmt.Sprintf("timed out after %s", c.config.Timeout), err)
		}
		return "", domain.NewProviderError(info.Provider, op, "request failed", err)
	}
	if resp == nil || resp.Text == "" {
		return "", domain.NewProviderError(info.Provider, op, "empty response", nil)
	}

	c.logger.Debug("provider call completed",
		"provider", info.Provider,
		"model", info.Model,
		"operation", op,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.Text, nil
}
