package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the chat tables and indexes if they don't exist.
// Messages carry a BIGSERIAL seq so equal timestamps keep insertion order.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				message_count INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Chats),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				seq BIGSERIAL,
				id TEXT PRIMARY KEY,
				chat_id TEXT NOT NULL,
				text TEXT NOT NULL,
				sender TEXT NOT NULL CHECK (sender IN ('user', 'ai')),
				timestamp TIMESTAMPTZ NOT NULL,
				metadata JSONB
			)`, tables.Messages),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_updated_at_idx ON %s (updated_at DESC)`, tables.Chats, tables.Chats),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_chat_ts_idx ON %s (chat_id, timestamp, seq)`, tables.Messages, tables.Messages),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// ClearData deletes every message and chat, keeping the schema
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Messages, tables.Chats} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
