package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
	llmSvc "chatbackend/internal/domain/services/llm"
	"chatbackend/internal/repository/memory"
	"chatbackend/internal/service/llm/formatting"
)

func newTestService(t *testing.T) (*Service, llmRepo.MessageRepository) {
	t.Helper()
	store := memory.NewStore()
	messages := memory.NewMessageRepository(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(memory.NewChatRepository(store), messages, memory.NewTransactionManager(), time.UTC, logger)

	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, messages
}

func addMessage(t *testing.T, repo llmRepo.MessageRepository, id, chatID, text string, sender llmModels.Sender, ts time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &llmModels.Message{ID: id, ChatID: chatID, Text: text, Sender: sender, Timestamp: ts})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreateChat(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		title     string
		wantTitle string
		wantErr   error
	}{
		{name: "default title", title: "", wantTitle: llmModels.DefaultChatTitle},
		{name: "blank title", title: "   ", wantTitle: llmModels.DefaultChatTitle},
		{name: "explicit title", title: " Recipes ", wantTitle: "Recipes"},
		{name: "too long", title: strings.Repeat("x", 256), wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat, err := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{Title: tt.title})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateChat() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateChat: %v", err)
			}
			if chat.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", chat.Title, tt.wantTitle)
			}
			if chat.ID == "" || chat.MessageCount != 0 {
				t.Errorf("unexpected new chat: %+v", chat)
			}
			if !chat.CreatedAt.Equal(chat.UpdatedAt) {
				t.Errorf("createdAt %v != updatedAt %v", chat.CreatedAt, chat.UpdatedAt)
			}
		})
	}
}

func TestListChats(t *testing.T) {
	svc, messages := newTestService(t)
	ctx := context.Background()

	older, _ := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{Title: "Older"})
	newer, _ := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{Title: "Newer"})

	long := strings.Repeat("é", 120)
	addMessage(t, messages, "m1", older.ID, "first", llmModels.SenderUser, older.CreatedAt)
	addMessage(t, messages, "m2", older.ID, long, llmModels.SenderAI, older.CreatedAt.Add(time.Second))

	summaries, err := svc.ListChats(ctx)
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	if summaries[0].ID != newer.ID || summaries[1].ID != older.ID {
		t.Errorf("order = %s, %s; want newest activity first", summaries[0].Title, summaries[1].Title)
	}
	if summaries[0].Preview != formatting.PreviewPlaceholder {
		t.Errorf("empty chat preview = %q", summaries[0].Preview)
	}
	if want := strings.Repeat("é", 100) + "..."; summaries[1].Preview != want {
		t.Errorf("preview = %q, want the latest message truncated", summaries[1].Preview)
	}
	if summaries[0].Timestamp == "" {
		t.Error("summary timestamp is empty")
	}
}

func TestGetChat(t *testing.T) {
	svc, messages := newTestService(t)
	ctx := context.Background()

	chat, _ := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{})

	detail, err := svc.GetChat(ctx, chat.ID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if detail.Messages == nil || len(detail.Messages) != 0 {
		t.Errorf("new chat messages = %#v, want empty non-nil slice", detail.Messages)
	}

	ts := chat.CreatedAt
	addMessage(t, messages, "b", chat.ID, "second", llmModels.SenderAI, ts.Add(time.Second))
	addMessage(t, messages, "a", chat.ID, "first", llmModels.SenderUser, ts)

	detail, err = svc.GetChat(ctx, chat.ID)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if len(detail.Messages) != 2 || detail.Messages[0].ID != "a" || detail.Messages[1].ID != "b" {
		t.Errorf("messages not chronological: %+v", detail.Messages)
	}

	if _, err := svc.GetChat(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetChat(missing) = %v, want ErrNotFound", err)
	}
}

func TestUpdateChat(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	chat, _ := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{})

	updated, err := svc.UpdateChat(ctx, chat.ID, &llmSvc.UpdateChatRequest{Title: "Renamed"})
	if err != nil {
		t.Fatalf("UpdateChat: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", updated.Title)
	}
	if !updated.UpdatedAt.After(chat.UpdatedAt) {
		t.Errorf("updatedAt not bumped")
	}

	if _, err := svc.UpdateChat(ctx, chat.ID, &llmSvc.UpdateChatRequest{Title: "  "}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank title = %v, want ErrValidation", err)
	}
	if _, err := svc.UpdateChat(ctx, "missing", &llmSvc.UpdateChatRequest{Title: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateChat(missing) = %v, want ErrNotFound", err)
	}
}

func TestDeleteChat(t *testing.T) {
	svc, messages := newTestService(t)
	ctx := context.Background()

	chat, _ := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{})
	keep, _ := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{Title: "Keep"})
	addMessage(t, messages, "m1", chat.ID, "hello", llmModels.SenderUser, chat.CreatedAt)
	addMessage(t, messages, "m2", chat.ID, "hi", llmModels.SenderAI, chat.CreatedAt)
	addMessage(t, messages, "m3", keep.ID, "untouched", llmModels.SenderUser, keep.CreatedAt)

	if err := svc.DeleteChat(ctx, chat.ID); err != nil {
		t.Fatalf("DeleteChat: %v", err)
	}
	if _, err := svc.GetChat(ctx, chat.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetChat after delete = %v, want ErrNotFound", err)
	}
	if n, _ := messages.Count(ctx, chat.ID); n != 0 {
		t.Errorf("%d messages left behind", n)
	}
	if n, _ := messages.Count(ctx, keep.ID); n != 1 {
		t.Errorf("other chat lost messages: %d", n)
	}

	if err := svc.DeleteChat(ctx, chat.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second DeleteChat = %v, want ErrNotFound", err)
	}
}

func TestListMessages(t *testing.T) {
	svc, messages := newTestService(t)
	ctx := context.Background()

	chat, _ := svc.CreateChat(ctx, &llmSvc.CreateChatRequest{})
	ts := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	addMessage(t, messages, "m1", chat.ID, "hello", llmModels.SenderUser, ts)

	views, err := svc.ListMessages(ctx, chat.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}
	if views[0].Timestamp != "02:30 PM" || views[0].ChatID != chat.ID || views[0].Sender != llmModels.SenderUser {
		t.Errorf("view = %+v", views[0])
	}

	if _, err := svc.ListMessages(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ListMessages(missing) = %v, want ErrNotFound", err)
	}
}
