package llm

import (
	"context"
	"time"
)

// CompletionRequest is a single prompt exchange: the task instruction and
// the transcript-derived user content.
type CompletionRequest struct {
	System string
	User   string
}

// Provider turns a prompt into generated text. Implementations are expected
// to be safe for concurrent use.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type Config struct {
	APIKey string
	// BaseURL overrides the provider endpoint; used by tests and
	// OpenAI-compatible gateways.
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
