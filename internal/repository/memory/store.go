// Package memory keeps chats and messages in process memory. It backs
// local development and tests; contents are lost on restart.
package memory

import (
	"context"
	"sync"

	llmModels "chatbackend/internal/domain/models/llm"
	"chatbackend/internal/domain/repositories"
)

// Store holds both collections behind a single lock. Each call is atomic;
// sequences of calls are not.
type Store struct {
	mu       sync.RWMutex
	chats    map[string]llmModels.Chat
	messages map[string][]llmModels.Message // chat ID -> messages in insertion order
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		chats:    make(map[string]llmModels.Chat),
		messages: make(map[string][]llmModels.Message),
	}
}

// Reset drops all chats and messages
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = make(map[string]llmModels.Chat)
	s.messages = make(map[string][]llmModels.Message)
}

// TransactionManager runs functions directly; the store has no
// multi-call transactions.
type TransactionManager struct{}

// NewTransactionManager creates a pass-through transaction manager
func NewTransactionManager() repositories.TransactionManager {
	return TransactionManager{}
}

// ExecTx runs fn with ctx unchanged
func (TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
