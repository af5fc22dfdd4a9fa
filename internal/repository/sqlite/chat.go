package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

// GormChatRepository implements ChatRepository using gorm
type GormChatRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewChatRepository creates a new GormChatRepository
func NewChatRepository(db *gorm.DB, logger *slog.Logger) llmRepo.ChatRepository {
	return &GormChatRepository{db: db, logger: logger}
}

func (r *GormChatRepository) Create(ctx context.Context, chat *llmModels.Chat) error {
	record := chatRecord{
		ID:           chat.ID,
		Title:        chat.Title,
		MessageCount: chat.MessageCount,
		CreatedAt:    chat.CreatedAt.UTC(),
		UpdatedAt:    chat.UpdatedAt.UTC(),
	}
	if err := conn(ctx, r.db).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("chat %s: %w", chat.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create chat: %w", err)
	}
	return nil
}

func (r *GormChatRepository) Get(ctx context.Context, chatID string) (*llmModels.Chat, error) {
	var record chatRecord
	err := conn(ctx, r.db).Where("id = ?", chatID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	chat := record.toModel()
	return &chat, nil
}

func (r *GormChatRepository) List(ctx context.Context, limit int) ([]llmModels.Chat, error) {
	var records []chatRecord
	query := conn(ctx, r.db).Order("updated_at DESC").Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	chats := make([]llmModels.Chat, len(records))
	for i, record := range records {
		chats[i] = record.toModel()
	}
	return chats, nil
}

func (r *GormChatRepository) Update(ctx context.Context, chatID string, patch llmRepo.ChatPatch) error {
	updates := map[string]interface{}{"updated_at": patch.UpdatedAt.UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.MessageCount != nil {
		updates["message_count"] = *patch.MessageCount
	}

	result := conn(ctx, r.db).Model(&chatRecord{}).Where("id = ?", chatID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update chat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	return nil
}

func (r *GormChatRepository) Delete(ctx context.Context, chatID string) error {
	result := conn(ctx, r.db).Where("id = ?", chatID).Delete(&chatRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete chat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	return nil
}

func (c chatRecord) toModel() llmModels.Chat {
	return llmModels.Chat{
		ID:           c.ID,
		Title:        c.Title,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		MessageCount: c.MessageCount,
	}
}
