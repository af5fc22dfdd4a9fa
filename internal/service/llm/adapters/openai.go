package adapters

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	domainllm "chatbackend/internal/domain/services/llm"
)

var openAIModelPrefixes = []string{"gpt-", "o1", "o3", "o4", "chatgpt-"}

// OpenAIAdapter calls the OpenAI chat completions API. A custom base URL
// points it at any API-compatible gateway.
type OpenAIAdapter struct {
	client *openai.Client
}

// NewOpenAIAdapter creates an adapter; baseURL may be empty.
func NewOpenAIAdapter(apiKey, baseURL string) *OpenAIAdapter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIAdapter{client: openai.NewClientWithConfig(cfg)}
}

func (a *OpenAIAdapter) Name() string {
	return "openai"
}

func (a *OpenAIAdapter) SupportsModel(model string) bool {
	model = strings.ToLower(model)
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

func (a *OpenAIAdapter) GenerateText(ctx context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, turn := range req.Messages {
		role := openai.ChatMessageRoleUser
		if turn.Role == domainllm.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
		User:     req.SessionID,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty completion")
	}

	return &domainllm.GenerateResponse{Text: resp.Choices[0].Message.Content, Model: resp.Model}, nil
}
