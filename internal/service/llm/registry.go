package llm

import (
	"context"
	"fmt"
	"sync"

	domainllm "chatbackend/internal/domain/services/llm"
)

// ProviderRegistry creates providers on first use and caches them for the
// life of the process. Safe for concurrent use.
type ProviderRegistry struct {
	factory ProviderCreator
	cache   map[string]domainllm.Provider
	mu      sync.RWMutex
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry(factory ProviderCreator) *ProviderRegistry {
	return &ProviderRegistry{
		factory: factory,
		cache:   make(map[string]domainllm.Provider),
	}
}

// GetProvider returns the cached provider for name, creating it if needed.
// Creation failures are not cached, so a provider configured later is
// picked up on the next call.
func (r *ProviderRegistry) GetProvider(ctx context.Context, name string) (domainllm.Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}

	r.mu.RLock()
	if cached, exists := r.cache[name]; exists {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have created it while we waited for the lock
	if cached, exists := r.cache[name]; exists {
		return cached, nil
	}

	provider, err := r.factory.CreateProvider(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider '%s': %w", name, err)
	}

	r.cache[name] = provider
	return provider, nil
}

// Validate checks if the factory is properly configured.
func (r *ProviderRegistry) Validate() error {
	if r.factory == nil {
		return fmt.Errorf("provider factory is not configured")
	}
	return nil
}
