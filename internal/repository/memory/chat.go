package memory

import (
	"context"
	"fmt"
	"sort"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

// ChatRepository implements llmRepo.ChatRepository on a Store
type ChatRepository struct {
	store *Store
}

// NewChatRepository creates a chat repository backed by store
func NewChatRepository(store *Store) llmRepo.ChatRepository {
	return &ChatRepository{store: store}
}

func (r *ChatRepository) Create(ctx context.Context, chat *llmModels.Chat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.chats[chat.ID]; exists {
		return fmt.Errorf("chat %s: %w", chat.ID, domain.ErrConflict)
	}
	r.store.chats[chat.ID] = *chat
	return nil
}

func (r *ChatRepository) Get(ctx context.Context, chatID string) (*llmModels.Chat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	chat, ok := r.store.chats[chatID]
	if !ok {
		return nil, fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	return &chat, nil
}

func (r *ChatRepository) List(ctx context.Context, limit int) ([]llmModels.Chat, error) {
	r.store.mu.RLock()
	chats := make([]llmModels.Chat, 0, len(r.store.chats))
	for _, chat := range r.store.chats {
		chats = append(chats, chat)
	}
	r.store.mu.RUnlock()

	sort.Slice(chats, func(i, j int) bool {
		if chats[i].UpdatedAt.Equal(chats[j].UpdatedAt) {
			return chats[i].ID < chats[j].ID
		}
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})

	if limit > 0 && len(chats) > limit {
		chats = chats[:limit]
	}
	return chats, nil
}

func (r *ChatRepository) Update(ctx context.Context, chatID string, patch llmRepo.ChatPatch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	chat, ok := r.store.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	if patch.Title != nil {
		chat.Title = *patch.Title
	}
	if patch.MessageCount != nil {
		chat.MessageCount = *patch.MessageCount
	}
	chat.UpdatedAt = patch.UpdatedAt
	r.store.chats[chatID] = chat
	return nil
}

func (r *ChatRepository) Delete(ctx context.Context, chatID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.chats[chatID]; !ok {
		return fmt.Errorf("chat %s: %w", chatID, domain.ErrNotFound)
	}
	delete(r.store.chats, chatID)
	return nil
}
