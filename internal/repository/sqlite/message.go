package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

// GormMessageRepository implements MessageRepository using gorm
type GormMessageRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewMessageRepository creates a new GormMessageRepository
func NewMessageRepository(db *gorm.DB, logger *slog.Logger) llmRepo.MessageRepository {
	return &GormMessageRepository{db: db, logger: logger}
}

func (r *GormMessageRepository) Create(ctx context.Context, msg *llmModels.Message) error {
	record := messageRecord{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		Text:      msg.Text,
		Sender:    string(msg.Sender),
		Timestamp: msg.Timestamp.UTC(),
		Metadata:  msg.Metadata,
	}
	if err := conn(ctx, r.db).Create(&record).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *GormMessageRepository) ListByChat(ctx context.Context, chatID string, limit int) ([]llmModels.Message, error) {
	return r.find(ctx, chatID, "timestamp ASC, seq ASC", limit)
}

func (r *GormMessageRepository) ListRecent(ctx context.Context, chatID string, n int) ([]llmModels.Message, error) {
	return r.find(ctx, chatID, "timestamp DESC, seq DESC", n)
}

func (r *GormMessageRepository) Latest(ctx context.Context, chatID string) (*llmModels.Message, error) {
	messages, err := r.ListRecent(ctx, chatID, 1)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("latest message of chat %s: %w", chatID, domain.ErrNotFound)
	}
	return &messages[0], nil
}

func (r *GormMessageRepository) Count(ctx context.Context, chatID string) (int, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&messageRecord{}).Where("chat_id = ?", chatID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return int(count), nil
}

func (r *GormMessageRepository) DeleteByChat(ctx context.Context, chatID string) (int, error) {
	result := conn(ctx, r.db).Where("chat_id = ?", chatID).Delete(&messageRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete messages: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (r *GormMessageRepository) find(ctx context.Context, chatID, order string, limit int) ([]llmModels.Message, error) {
	var records []messageRecord
	query := conn(ctx, r.db).Where("chat_id = ?", chatID).Order(order)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]llmModels.Message, len(records))
	for i, record := range records {
		messages[i] = llmModels.Message{
			ID:        record.ID,
			ChatID:    record.ChatID,
			Text:      record.Text,
			Sender:    llmModels.Sender(record.Sender),
			Timestamp: record.Timestamp,
			Metadata:  record.Metadata,
		}
	}
	return messages, nil
}
