// Package exchange runs one chat exchange: the user's message goes in, an
// AI reply comes out, and the chat's metadata is brought up to date.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
	llmSvc "chatbackend/internal/domain/services/llm"
	"chatbackend/internal/prompts"
	"chatbackend/internal/service/llm/formatting"
)

// titleMessageThreshold is the message count at or below which a chat is
// still on its first exchange and gets a generated title.
const titleMessageThreshold = 2

var nonBlank = regexp.MustCompile(`\S`)

// Config holds exchange tuning
type Config struct {
	HistoryWindow int            // recent messages offered to the provider
	Location      *time.Location // clock-time rendering
}

// Service implements llmSvc.ExchangeService
type Service struct {
	chatRepo    llmRepo.ChatRepository
	messageRepo llmRepo.MessageRepository
	ai          llmSvc.AIClient
	prompts     *prompts.Set
	config      Config
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates the exchange orchestrator. ai is shared across
// requests and must be safe for concurrent use.
func NewService(
	chatRepo llmRepo.ChatRepository,
	messageRepo llmRepo.MessageRepository,
	ai llmSvc.AIClient,
	promptSet *prompts.Set,
	cfg Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		ai:          ai,
		prompts:     promptSet,
		config:      cfg,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ llmSvc.ExchangeService = (*Service)(nil)

// Exchange stores the user's message, obtains a reply, stores it, and
// updates the chat. Provider failures never fail the exchange: the reply
// degrades to the fallback text and the title stays as it was. Only a
// missing chat, invalid input, or a failed message write is returned.
// Writes already made are not rolled back.
func (s *Service) Exchange(ctx context.Context, req *llmSvc.ExchangeRequest) (*llmSvc.ExchangeResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	chat, err := s.chatRepo.Get(ctx, req.ChatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: look up chat: %w", domain.ErrOperationFailed, err)
	}

	// The user's message is written before the provider is called so it
	// survives any provider failure.
	userMsg := s.newMessage(chat.ID, llmModels.SenderUser, req.Message)
	if err := s.messageRepo.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("%w: save user message: %w", domain.ErrOperationFailed, err)
	}

	replyText := s.reply(ctx, req, userMsg)

	aiMsg := s.newMessage(chat.ID, llmModels.SenderAI, replyText)
	if err := s.messageRepo.Create(ctx, aiMsg); err != nil {
		return nil, fmt.Errorf("%w: save ai message: %w", domain.ErrOperationFailed, err)
	}

	s.updateChat(ctx, chat, req.Message)

	return &llmSvc.ExchangeResult{
		UserMessage: formatting.MessageView(userMsg, s.config.Location),
		AIResponse:  formatting.MessageView(aiMsg, s.config.Location),
	}, nil
}

// reply asks the provider for an answer, falling back to the fixed
// apology on any failure.
func (s *Service) reply(ctx context.Context, req *llmSvc.ExchangeRequest, userMsg *llmModels.Message) string {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = req.ChatID
	}

	text, err := s.ai.Complete(ctx, &llmSvc.CompletionRequest{
		Persona:   s.prompts.Persona,
		History:   s.history(ctx, userMsg),
		Text:      req.Message,
		SessionID: sessionID,
		Model:     req.Model,
	})
	if err != nil {
		s.logger.Error("ai completion failed, using fallback reply",
			"chat_id", req.ChatID,
			"error", err,
		)
		return s.prompts.FallbackReply
	}
	return text
}

// history returns up to HistoryWindow messages before userMsg in
// chronological order. userMsg itself is sent separately as the prompt.
func (s *Service) history(ctx context.Context, userMsg *llmModels.Message) []llmSvc.HistoryEntry {
	if s.config.HistoryWindow <= 0 {
		return nil
	}

	// One extra so the window is still full after dropping userMsg
	recent, err := s.messageRepo.ListRecent(ctx, userMsg.ChatID, s.config.HistoryWindow+1)
	if err != nil {
		s.logger.Warn("could not load history, continuing without it",
			"chat_id", userMsg.ChatID,
			"error", err,
		)
		return nil
	}

	entries := make([]llmSvc.HistoryEntry, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].ID == userMsg.ID {
			continue
		}
		entries = append(entries, llmSvc.HistoryEntry{Sender: recent[i].Sender, Text: recent[i].Text})
	}
	if len(entries) > s.config.HistoryWindow {
		entries = entries[len(entries)-s.config.HistoryWindow:]
	}
	return entries
}

// updateChat recomputes the message count, bumps updatedAt, and names the
// chat after its first exchange. Failures are logged only: both messages
// are already stored and the next exchange recomputes the count.
func (s *Service) updateChat(ctx context.Context, chat *llmModels.Chat, userText string) {
	count, err := s.messageRepo.Count(ctx, chat.ID)
	if err != nil {
		s.logger.Error("failed to count messages", "chat_id", chat.ID, "error", err)
		return
	}

	patch := llmRepo.ChatPatch{MessageCount: &count, UpdatedAt: s.now()}
	if count <= titleMessageThreshold {
		title, err := s.ai.SuggestTitle(ctx, userText)
		if err != nil {
			s.logger.Warn("failed to generate chat title", "chat_id", chat.ID, "error", err)
		} else {
			patch.Title = &title
		}
	}

	if err := s.chatRepo.Update(ctx, chat.ID, patch); err != nil {
		s.logger.Error("failed to update chat metadata", "chat_id", chat.ID, "error", err)
		return
	}

	s.logger.Info("exchange completed",
		"chat_id", chat.ID,
		"message_count", count,
		"titled", patch.Title != nil,
	)
}

func (s *Service) newMessage(chatID string, sender llmModels.Sender, text string) *llmModels.Message {
	return &llmModels.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Text:      text,
		Sender:    sender,
		Timestamp: s.now(),
	}
}

func validateRequest(req *llmSvc.ExchangeRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ChatID, validation.Required),
		validation.Field(&req.Message,
			validation.Required,
			validation.Match(nonBlank).Error("cannot be blank"),
		),
	)
}
