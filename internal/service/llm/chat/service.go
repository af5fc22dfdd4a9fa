package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"chatbackend/internal/config"
	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	"chatbackend/internal/domain/repositories"
	llmRepo "chatbackend/internal/domain/repositories/llm"
	llmSvc "chatbackend/internal/domain/services/llm"
	"chatbackend/internal/service/llm/formatting"
)

// Service implements the ChatService interface
type Service struct {
	chatRepo    llmRepo.ChatRepository
	messageRepo llmRepo.MessageRepository
	txManager   repositories.TransactionManager
	location    *time.Location
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new chat CRUD service. loc controls how message
// clock times are rendered.
func NewService(
	chatRepo llmRepo.ChatRepository,
	messageRepo llmRepo.MessageRepository,
	txManager repositories.TransactionManager,
	loc *time.Location,
	logger *slog.Logger,
) *Service {
	return &Service{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		txManager:   txManager,
		location:    loc,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

var _ llmSvc.ChatService = (*Service)(nil)

// CreateChat creates a new chat session
func (s *Service) CreateChat(ctx context.Context, req *llmSvc.CreateChatRequest) (*llmModels.Chat, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = llmModels.DefaultChatTitle
	}
	if err := validateTitle(title); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	now := s.now()
	chat := &llmModels.Chat{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat created", "id", chat.ID, "title", chat.Title)
	return chat, nil
}

// ListChats returns chat summaries, most recently active first
func (s *Service) ListChats(ctx context.Context) ([]llmModels.ChatSummary, error) {
	chats, err := s.chatRepo.List(ctx, config.MaxListedChats)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summaries := make([]llmModels.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		preview := formatting.PreviewPlaceholder
		latest, err := s.messageRepo.Latest(ctx, chat.ID)
		switch {
		case err == nil:
			preview = formatting.Preview(latest.Text)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}

		summaries = append(summaries, llmModels.ChatSummary{
			ID:           chat.ID,
			Title:        chat.Title,
			Preview:      preview,
			Timestamp:    formatting.RelativeAge(chat.UpdatedAt, now),
			MessageCount: chat.MessageCount,
		})
	}
	return summaries, nil
}

// GetChat returns a chat with its messages in chronological order
func (s *Service) GetChat(ctx context.Context, chatID string) (*llmModels.ChatDetail, error) {
	chat, err := s.chatRepo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByChat(ctx, chatID, config.MaxListedMessages)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []llmModels.Message{}
	}

	return &llmModels.ChatDetail{ID: chat.ID, Title: chat.Title, Messages: messages}, nil
}

// UpdateChat renames a chat and bumps its activity time
func (s *Service) UpdateChat(ctx context.Context, chatID string, req *llmSvc.UpdateChatRequest) (*llmModels.Chat, error) {
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	if err := s.chatRepo.Update(ctx, chatID, llmRepo.ChatPatch{Title: &title, UpdatedAt: s.now()}); err != nil {
		return nil, err
	}

	chat, err := s.chatRepo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("chat updated", "id", chat.ID, "title", chat.Title)
	return chat, nil
}

// DeleteChat removes a chat after removing all of its messages
func (s *Service) DeleteChat(ctx context.Context, chatID string) error {
	var deletedMessages int
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		n, err := s.messageRepo.DeleteByChat(ctx, chatID)
		if err != nil {
			return err
		}
		deletedMessages = n
		return s.chatRepo.Delete(ctx, chatID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("chat deleted", "id", chatID, "messages_deleted", deletedMessages)
	return nil
}

// ListMessages returns a chat's messages rendered for display
func (s *Service) ListMessages(ctx context.Context, chatID string) ([]llmModels.MessageView, error) {
	if _, err := s.chatRepo.Get(ctx, chatID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByChat(ctx, chatID, config.MaxListedMessages)
	if err != nil {
		return nil, err
	}

	views := make([]llmModels.MessageView, len(messages))
	for i := range messages {
		views[i] = formatting.MessageView(&messages[i], s.location)
	}
	return views, nil
}

func validateTitle(title string) error {
	return validation.Validate(title,
		validation.Required.Error("title is required"),
		validation.RuneLength(1, config.MaxChatTitleLength),
	)
}
