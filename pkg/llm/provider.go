package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
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

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

// Delta is one decoded increment of a streaming response. A non-nil Err is
// terminal: the stream failed or ended without its completion marker, and no
// further deltas follow.
type Delta struct {
	Content string
	Err     error
}

// LLMProvider defines the contract for any LLM backend. Batched and
// streaming generation are two distinct operations so each contract stays
// statically checkable.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the full response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream sends a chat history and yields decoded text deltas in
	// receipt order on the returned channel. The channel is closed after the
	// terminal marker or a terminal error. Cancelling ctx stops the decoder
	// and releases the upstream transport.
	ChatStream(ctx context.Context, history []Message, options ...Option) (<-chan Delta, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
