package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(filepath.Join(t.TempDir(), "chats.db"), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestChatLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	chats := NewChatRepository(db, logger)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second"} {
		chat := &llmModels.Chat{
			ID:        id,
			Title:     llmModels.DefaultChatTitle,
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := chats.Create(ctx, chat); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	list, err := chats.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "second" {
		t.Fatalf("List() = %+v, want second first", list)
	}

	title := "Go Concurrency"
	count := 2
	if err := chats.Update(ctx, "first", llmRepo.ChatPatch{Title: &title, MessageCount: &count, UpdatedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := chats.Get(ctx, "first")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != title || got.MessageCount != 2 || !got.UpdatedAt.Equal(base.Add(time.Hour)) {
		t.Errorf("Get after Update = %+v", got)
	}

	if err := chats.Update(ctx, "missing", llmRepo.ChatPatch{UpdatedAt: base}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update(missing) = %v, want ErrNotFound", err)
	}
	if err := chats.Delete(ctx, "first"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := chats.Get(ctx, "first"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(deleted) = %v, want ErrNotFound", err)
	}
	if err := chats.Delete(ctx, "first"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete(deleted) = %v, want ErrNotFound", err)
	}
}

func TestMessageOrderingAndMetadata(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	messages := NewMessageRepository(db, logger)

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"m1", "m2", "m3"} {
		msg := &llmModels.Message{
			ID:        id,
			ChatID:    "chat",
			Text:      "text " + id,
			Sender:    llmModels.SenderUser,
			Timestamp: ts, // identical timestamps: insertion order decides
			Metadata:  map[string]interface{}{"source": "test"},
		}
		if err := messages.Create(ctx, msg); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	asc, err := messages.ListByChat(ctx, "chat", 100)
	if err != nil {
		t.Fatalf("ListByChat: %v", err)
	}
	if len(asc) != 3 || asc[0].ID != "m1" || asc[2].ID != "m3" {
		t.Fatalf("ListByChat order = %v", ids(asc))
	}
	if asc[0].Metadata["source"] != "test" {
		t.Errorf("metadata not round-tripped: %v", asc[0].Metadata)
	}

	recent, _ := messages.ListRecent(ctx, "chat", 2)
	if len(recent) != 2 || recent[0].ID != "m3" || recent[1].ID != "m2" {
		t.Fatalf("ListRecent order = %v", ids(recent))
	}

	if n, _ := messages.Count(ctx, "chat"); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
	deleted, err := messages.DeleteByChat(ctx, "chat")
	if err != nil || deleted != 3 {
		t.Errorf("DeleteByChat = %d, %v; want 3", deleted, err)
	}
	if _, err := messages.Latest(ctx, "chat"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Latest(empty) = %v, want ErrNotFound", err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	chats := NewChatRepository(db, logger)
	tx := NewTransactionManager(db)

	failure := errors.New("boom")
	err := tx.ExecTx(ctx, func(ctx context.Context) error {
		now := time.Now()
		if err := chats.Create(ctx, &llmModels.Chat{ID: "tx", Title: "t", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("ExecTx = %v, want %v", err, failure)
	}
	if _, err := chats.Get(ctx, "tx"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("chat written in rolled-back transaction is visible: %v", err)
	}
}

func ids(messages []llmModels.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.ID
	}
	return out
}
