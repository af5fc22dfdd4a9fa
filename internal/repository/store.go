// Package repository selects and opens the chat store named by the
// configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"chatbackend/internal/config"
	"chatbackend/internal/domain/repositories"
	llmRepo "chatbackend/internal/domain/repositories/llm"
	"chatbackend/internal/repository/memory"
	mongoStore "chatbackend/internal/repository/mongo"
	"chatbackend/internal/repository/postgres"
	pgLLM "chatbackend/internal/repository/postgres/llm"
	"chatbackend/internal/repository/sqlite"
)

// Store bundles the repositories of one driver with its lifecycle hooks.
type Store struct {
	Driver   string
	Chats    llmRepo.ChatRepository
	Messages llmRepo.MessageRepository
	Tx       repositories.TransactionManager

	ping  func(ctx context.Context) error
	clear func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backing store is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Clear deletes every chat and message
func (s *Store) Clear(ctx context.Context) error {
	return s.clear(ctx)
}

// Close releases connections
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the store selected by cfg.StoreDriver and makes sure
// its schema exists.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return openMemory(), nil
	case config.StorePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StoreMongo:
		return openMongo(ctx, cfg, logger)
	case config.StoreSQLite:
		return openSQLite(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openMemory() *Store {
	store := memory.NewStore()
	return &Store{
		Driver:   config.StoreMemory,
		Chats:    memory.NewChatRepository(store),
		Messages: memory.NewMessageRepository(store),
		Tx:       memory.NewTransactionManager(),
		clear: func(context.Context) error {
			store.Reset()
			return nil
		},
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, err
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	logger.Info("postgres store ready", "table_prefix", cfg.TablePrefix)

	return &Store{
		Driver:   config.StorePostgres,
		Chats:    pgLLM.NewChatRepository(repoConfig),
		Messages: pgLLM.NewMessageRepository(repoConfig),
		Tx:       postgres.NewTransactionManager(pool, logger),
		ping:     pool.Ping,
		clear: func(ctx context.Context) error {
			return postgres.ClearData(ctx, pool, tables)
		},
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	client, db, err := mongoStore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	if err := mongoStore.EnsureIndexes(ctx, db, logger); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.Info("mongo store ready", "database", cfg.MongoDatabase)

	return &Store{
		Driver:   config.StoreMongo,
		Chats:    mongoStore.NewChatRepository(db, logger),
		Messages: mongoStore.NewMessageRepository(db, logger),
		Tx:       mongoStore.NewTransactionManager(),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		clear: func(ctx context.Context) error {
			return mongoStore.ClearData(ctx, db)
		},
		close: client.Disconnect,
	}, nil
}

func openSQLite(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	db, err := sqlite.Open(cfg.SQLitePath, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}

	return &Store{
		Driver:   config.StoreSQLite,
		Chats:    sqlite.NewChatRepository(db, logger),
		Messages: sqlite.NewMessageRepository(db, logger),
		Tx:       sqlite.NewTransactionManager(db),
		ping:     sqlDB.PingContext,
		clear: func(ctx context.Context) error {
			return sqlite.ClearData(ctx, db)
		},
		close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}
