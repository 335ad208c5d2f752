// Package vision abstracts vision-capable model providers for photo analysis.
package vision

import (
	"context"
	"fmt"
)

// Image is an in-memory image ready to send to a model.
type Image struct {
	Data      []byte
	MediaType string
}

// Client sends an image plus prompt to a vision-capable model and returns the
// model's free-text answer. Implementations do not retry.
type Client interface {
	Describe(ctx context.Context, img Image, prompt string) (string, error)
}

// ModelError indicates the model call failed or returned unusable output.
type ModelError struct {
	Provider string
	Err      error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("vision model %s: %v", e.Provider, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// PlaceholderClient is used when no provider is configured. Every call
// fails with a ModelError so misconfiguration surfaces at request time
// instead of crashing startup.
type PlaceholderClient struct{}

func (PlaceholderClient) Describe(ctx context.Context, img Image, prompt string) (string, error) {
	_ = ctx
	_ = img
	_ = prompt
	return "", &ModelError{Provider: "none", Err: fmt.Errorf("vision client not configured")}
}
