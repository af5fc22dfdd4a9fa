package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
	"chatbackend/internal/repository/postgres"
)

// PostgresMessageRepository implements the MessageRepository interface using PostgreSQL
type PostgresMessageRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewMessageRepository creates a new PostgresMessageRepository
func NewMessageRepository(config *postgres.RepositoryConfig) llmRepo.MessageRepository {
	return &PostgresMessageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const messageColumns = "id, chat_id, text, sender, timestamp, metadata"

// Create inserts a message; seq is assigned by the database
func (r *PostgresMessageRepository) Create(ctx context.Context, msg *llmModels.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Messages, messageColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, msg.ID, msg.ChatID, msg.Text, string(msg.Sender), msg.Timestamp, msg.Metadata); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListByChat returns messages oldest first
func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID string, limit int) ([]llmModels.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chat_id = $1
		ORDER BY timestamp ASC, seq ASC
		LIMIT $2
	`, messageColumns, r.tables.Messages)

	return r.query(ctx, query, chatID, limit)
}

// ListRecent returns the n newest messages, newest first
func (r *PostgresMessageRepository) ListRecent(ctx context.Context, chatID string, n int) ([]llmModels.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE chat_id = $1
		ORDER BY timestamp DESC, seq DESC
		LIMIT $2
	`, messageColumns, r.tables.Messages)

	return r.query(ctx, query, chatID, n)
}

// Latest returns the newest message of a chat
func (r *PostgresMessageRepository) Latest(ctx context.Context, chatID string) (*llmModels.Message, error) {
	messages, err := r.ListRecent(ctx, chatID, 1)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("latest message of chat %s: %w", chatID, domain.ErrNotFound)
	}
	return &messages[0], nil
}

// Count returns how many messages a chat has
func (r *PostgresMessageRepository) Count(ctx context.Context, chatID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE chat_id = $1`, r.tables.Messages)

	var count int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, chatID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}

// DeleteByChat removes every message of a chat
func (r *PostgresMessageRepository) DeleteByChat(ctx context.Context, chatID string) (int, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE chat_id = $1`, r.tables.Messages)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, chatID)
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *PostgresMessageRepository) query(ctx context.Context, query string, args ...interface{}) ([]llmModels.Message, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}

	messages, err := pgx.CollectRows(rows, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	return messages, nil
}

func scanMessage(row pgx.CollectableRow) (llmModels.Message, error) {
	var msg llmModels.Message
	var sender string
	err := row.Scan(&msg.ID, &msg.ChatID, &msg.Text, &sender, &msg.Timestamp, &msg.Metadata)
	msg.Sender = llmModels.Sender(sender)
	return msg, err
}
