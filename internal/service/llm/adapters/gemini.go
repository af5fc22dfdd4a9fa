package adapters

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	domainllm "chatbackend/internal/domain/services/llm"
)

// Gemini names the assistant role "model"
const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
)

// GeminiAdapter calls Google's Gemini API through the genai SDK.
type GeminiAdapter struct {
	client *genai.Client
}

// NewGeminiAdapter creates a Gemini API client.
func NewGeminiAdapter(ctx context.Context, apiKey string) (*GeminiAdapter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiAdapter{client: client}, nil
}

func (a *GeminiAdapter) Name() string {
	return "gemini"
}

func (a *GeminiAdapter) SupportsModel(model string) bool {
	return strings.HasPrefix(strings.ToLower(model), "gemini-")
}

func (a *GeminiAdapter) GenerateText(ctx context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, turn := range req.Messages {
		role := geminiRoleUser
		if turn.Role == domainllm.RoleAssistant {
			role = geminiRoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	var cfg *genai.GenerateContentConfig
	if req.System != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
		}
	}

	resp, err := a.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, err
	}
	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty completion")
	}

	return &domainllm.GenerateResponse{Text: text, Model: req.Model}, nil
}
