package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// ImagePayload carries raw image bytes with their media type, in either
// direction (vision input or generation output).
type ImagePayload struct {
	MediaType string
	Data      []byte
}

// ErrNotSupported is returned by providers that lack a capability
// (e.g. image generation on local text-only backends).
var ErrNotSupported = errors.New("llm: capability not supported by provider")

// APIError is a failure reported by the remote model API. StatusCode and
// Status carry enough signal for callers to classify the failure; Message
// is raw upstream text and must stay out of client responses.
type APIError struct {
	StatusCode int
	Status     string // e.g. "RESOURCE_EXHAUSTED", "PERMISSION_DENIED"
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llm api error: status %d (%s): %s", e.StatusCode, e.Status, e.Message)
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateVision sends a prompt plus an inline image to the model
	GenerateVision(ctx context.Context, prompt string, image *ImagePayload, options ...Option) (string, error)

	// GenerateImage asks the model to produce an image for the prompt
	GenerateImage(ctx context.Context, prompt string, options ...Option) (*ImagePayload, error)
}
