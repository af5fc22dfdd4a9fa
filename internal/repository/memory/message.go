package memory

import (
	"context"
	"fmt"
	"sort"

	"chatbackend/internal/domain"
	llmModels "chatbackend/internal/domain/models/llm"
	llmRepo "chatbackend/internal/domain/repositories/llm"
)

// MessageRepository implements llmRepo.MessageRepository on a Store
type MessageRepository struct {
	store *Store
}

// NewMessageRepository creates a message repository backed by store
func NewMessageRepository(store *Store) llmRepo.MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, msg *llmModels.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.messages[msg.ChatID] = append(r.store.messages[msg.ChatID], *msg)
	return nil
}

func (r *MessageRepository) ListByChat(ctx context.Context, chatID string, limit int) ([]llmModels.Message, error) {
	messages := r.ordered(chatID)
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (r *MessageRepository) ListRecent(ctx context.Context, chatID string, n int) ([]llmModels.Message, error) {
	messages := r.ordered(chatID)
	recent := make([]llmModels.Message, 0, n)
	for i := len(messages) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, messages[i])
	}
	return recent, nil
}

func (r *MessageRepository) Latest(ctx context.Context, chatID string) (*llmModels.Message, error) {
	recent, _ := r.ListRecent(ctx, chatID, 1)
	if len(recent) == 0 {
		return nil, fmt.Errorf("latest message of chat %s: %w", chatID, domain.ErrNotFound)
	}
	return &recent[0], nil
}

func (r *MessageRepository) Count(ctx context.Context, chatID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.messages[chatID]), nil
}

func (r *MessageRepository) DeleteByChat(ctx context.Context, chatID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n := len(r.store.messages[chatID])
	delete(r.store.messages, chatID)
	return n, nil
}

// ordered returns a copy of a chat's messages sorted by timestamp. The
// stable sort keeps insertion order for equal timestamps.
func (r *MessageRepository) ordered(chatID string) []llmModels.Message {
	r.store.mu.RLock()
	messages := make([]llmModels.Message, len(r.store.messages[chatID]))
	copy(messages, r.store.messages[chatID])
	r.store.mu.RUnlock()

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages
}
