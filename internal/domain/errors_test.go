package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestProviderError(t *testing.T) {
	cause := context.DeadlineExceeded
	err := NewProviderError("openai", "complete", "request timed out", cause)

	if !errors.Is(err, ErrProvider) {
		t.Error("ProviderError should match ErrProvider")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("ProviderError should unwrap to its cause")
	}

	wrapped := fmt.Errorf("exchange: %w", err)
	var pe *ProviderError
	if !errors.As(wrapped, &pe) || pe.Provider != "openai" {
		t.Errorf("errors.As through wrapping failed: %v", wrapped)
	}

	want := "openai complete: request timed out: context deadline exceeded"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestProviderErrorWithoutProvider(t *testing.T) {
	err := NewProviderError("", "suggest_title", "empty title", nil)
	if got, want := err.Error(), "suggest_title: empty title"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("ProviderError must not match ErrNotFound")
	}
}
