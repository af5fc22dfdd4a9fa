package adapters

import (
	"context"
	"fmt"
	"strings"

	llmprovider "github.com/haowjy/meridian-llm-go"

	domainllm "chatbackend/internal/domain/services/llm"
)

const blockTypeText = "text"

// MeridianAdapter wraps a meridian-llm-go provider (anthropic, openrouter,
// lorem) and implements the backend's Provider interface.
type MeridianAdapter struct {
	provider llmprovider.Provider
}

// NewMeridianAdapter creates an adapter from an existing library provider.
func NewMeridianAdapter(provider llmprovider.Provider) *MeridianAdapter {
	return &MeridianAdapter{provider: provider}
}

// Name returns the provider name.
func (a *MeridianAdapter) Name() string {
	return a.provider.Name().String()
}

// SupportsModel returns true if this provider supports the given model.
func (a *MeridianAdapter) SupportsModel(model string) bool {
	return a.provider.SupportsModel(model)
}

// GenerateText sends the conversation and joins the returned text blocks.
func (a *MeridianAdapter) GenerateText(ctx context.Context, req *domainllm.GenerateRequest) (*domainllm.GenerateResponse, error) {
	libResp, err := a.provider.GenerateResponse(ctx, toLibraryRequest(req))
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range libResp.Blocks {
		if block == nil || block.BlockType != blockTypeText || block.TextContent == nil {
			continue
		}
		text.WriteString(*block.TextContent)
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("response contained no text blocks")
	}

	return &domainllm.GenerateResponse{Text: text.String(), Model: libResp.Model}, nil
}

// toLibraryRequest converts turns to single-text-block library messages
func toLibraryRequest(req *domainllm.GenerateRequest) *llmprovider.GenerateRequest {
	messages := make([]llmprovider.Message, len(req.Messages))
	for i, turn := range req.Messages {
		text := turn.Text
		messages[i] = llmprovider.Message{
			Role: turn.Role,
			Blocks: []*llmprovider.Block{{
				BlockType:   blockTypeText,
				Sequence:    0,
				TextContent: &text,
			}},
		}
	}

	libReq := &llmprovider.GenerateRequest{
		Messages: messages,
		Model:    req.Model,
	}
	if req.System != "" {
		system := req.System
		libReq.Params = &llmprovider.RequestParams{System: &system}
	}
	return libReq
}
