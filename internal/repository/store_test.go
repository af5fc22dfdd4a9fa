package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"chatbackend/internal/config"
	llmModels "chatbackend/internal/domain/models/llm"
)

func TestOpenEmbeddedDrivers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "memory", cfg: &config.Config{StoreDriver: config.StoreMemory}},
		{name: "sqlite", cfg: &config.Config{StoreDriver: config.StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "chats.db")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := Open(ctx, tt.cfg, logger)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer store.Close(ctx)

			if store.Driver != tt.cfg.StoreDriver {
				t.Errorf("Driver = %q, want %q", store.Driver, tt.cfg.StoreDriver)
			}
			if err := store.Ping(ctx); err != nil {
				t.Fatalf("Ping: %v", err)
			}

			now := time.Now().UTC()
			if err := store.Chats.Create(ctx, &llmModels.Chat{ID: "c1", Title: "t", CreatedAt: now, UpdatedAt: now}); err != nil {
				t.Fatalf("Create chat: %v", err)
			}
			if err := store.Messages.Create(ctx, &llmModels.Message{ID: "m1", ChatID: "c1", Text: "hi", Sender: llmModels.SenderUser, Timestamp: now}); err != nil {
				t.Fatalf("Create message: %v", err)
			}

			if err := store.Clear(ctx); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			chats, _ := store.Chats.List(ctx, 10)
			if len(chats) != 0 {
				t.Errorf("List after Clear returned %d chats", len(chats))
			}
			if n, _ := store.Messages.Count(ctx, "c1"); n != 0 {
				t.Errorf("Count after Clear = %d", n)
			}
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := Open(context.Background(), &config.Config{StoreDriver: "redis"}, logger); err == nil {
		t.Fatal("Open with unknown driver should fail")
	}
}
