package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("already exists")
	ErrProvider        = errors.New("ai provider error")
	ErrOperationFailed = errors.New("operation failed")
)

// ProviderError describes a failed call to an AI completion provider.
// Every AIClient failure is reported as a *ProviderError so callers can
// branch on errors.Is(err, ErrProvider) without knowing the transport.
type ProviderError struct {
	Provider  string // "openai", "anthropic", ...; empty when routing failed
	Operation string // "complete" or "suggest_title"
	Message   string
	Cause     error
}

func NewProviderError(provider, operation, message string, cause error) *ProviderError {
	return &ProviderError{
		Provider:  provider,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

func (e *ProviderError) Error() string {
	prefix := e.Operation
	if e.Provider != "" {
		prefix = e.Provider + " " + e.Operation
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is() to match against ErrProvider
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}
