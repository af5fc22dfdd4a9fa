package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
	"chatbackend/internal/repository/postgres"
)

// PostgresChatRepository implements the ChatRepository interface using PostgreSQL
type PostgresChatRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewChatRepository creates a new PostgresChatRepository
func NewChatRepository(config *postgres.RepositoryConfig) llmRepo.ChatRepository {
	return &PostgresChatRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new chat
func (r *PostgresChatRepository) Create(ctx context.Context, chat *llmModels.Chat) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, message_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Chats)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query, chat.ID, chat.Title, chat.MessageCount, chat.CreatedAt, chat.UpdatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("chat %s already exists: %w", chat.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create chat: %w", err)
	}
	return nil
}

// Get retrieves a chat by ID
func (r *PostgresChatRepository) Get(ctx context.Context, chatID string) (*llmModels.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, title, message_count, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Chats)

	var chat llmModels.Chat
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, chatID).Scan(
		&chat.ID,
		&chat.Title,
		&chat.MessageCount,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return &chat, nil
}

// List returns chats ordered by most recent activity
func (r *PostgresChatRepository) List(ctx context.Context, limit int) ([]llmModels.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, title, message_count, created_at, updated_at
		FROM %s
		ORDER BY updated_at DESC, id
		LIMIT $1
	`, r.tables.Chats)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	chats := make([]llmModels.Chat, 0)
	for rows.Next() {
		var chat llmModels.Chat
		if err := rows.Scan(&chat.ID, &chat.Title, &chat.MessageCount, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}
	return chats, nil
}

// Update applies a patch. COALESCE keeps columns whose patch field is nil.
func (r *PostgresChatRepository) Update(ctx context.Context, chatID string, patch llmRepo.ChatPatch) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = COALESCE($2, title),
		    message_count = COALESCE($3, message_count),
		    updated_at = $4
		WHERE id = $1
	`, r.tables.Chats)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chatID, patch.Title, patch.MessageCount, patch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update chat: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the chat row
func (r *PostgresChatRepository) Delete(ctx context.Context, chatID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Chats)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chatID)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}

	r.logger.Debug("chat deleted", "chat_id", chatID)
	return nil
}
