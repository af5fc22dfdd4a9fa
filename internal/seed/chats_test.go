package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	llmModels "chatbackend/internal/domain/models/llm"
	"chatbackend/internal/repository/memory"
)

func TestSeedChats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	chats := memory.NewChatRepository(store)
	messages := memory.NewMessageRepository(store)
	seeder := NewSeeder(chats, messages, slog.New(slog.NewTextHandler(io.Discard, nil)))

	n, err := seeder.SeedChats(ctx)
	if err != nil {
		t.Fatalf("SeedChats: %v", err)
	}
	if n != len(sampleChats()) {
		t.Errorf("created %d chats, want %d", n, len(sampleChats()))
	}

	list, _ := chats.List(ctx, 100)
	if len(list) == 0 || list[0].Title != "Coding Poetry Discussion" {
		t.Fatalf("most recent chat = %+v, want Coding Poetry Discussion", list)
	}

	poetry, err := chats.Get(ctx, ChatID("Coding Poetry Discussion"))
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := messages.ListByChat(ctx, poetry.ID, 0)
	if len(stored) != poetry.MessageCount || len(stored) != 5 {
		t.Errorf("poetry chat has %d messages, count says %d", len(stored), poetry.MessageCount)
	}
	if stored[0].Sender != llmModels.SenderAI {
		t.Errorf("first message sender = %q, want ai greeting", stored[0].Sender)
	}
	if last := stored[len(stored)-1]; !last.Timestamp.Equal(poetry.UpdatedAt) {
		t.Errorf("last message at %v, chat updated at %v", last.Timestamp, poetry.UpdatedAt)
	}

	// Reseeding skips existing chats
	again, err := seeder.SeedChats(ctx)
	if err != nil {
		t.Fatalf("second SeedChats: %v", err)
	}
	if again != 0 {
		t.Errorf("reseed created %d chats, want 0", again)
	}
	if n, _ := messages.Count(ctx, poetry.ID); n != 5 {
		t.Errorf("reseed duplicated messages: %d", n)
	}
}
