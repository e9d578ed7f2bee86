// Package content produces the educational prose attached to
// recommendations. Provider clients can fail; the Generator wrapper that the
// engine consumes cannot: retry, backoff, and fallback all live here.
package content

import (
	"context"
	"time"
)

// Client defines the interface for raw content providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for content generation.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	RateLimit      int
	Temperature    float64
	MaxTokens      int
}

// systemPrompt frames every provider request. Tone constraints here are a
// first line of defense; the guardrail pipeline still lints the output.
const systemPrompt = "You are a supportive financial educator. Write 2-3 sentences of " +
	"encouraging, plain-language educational content for the topic provided. Never shame " +
	"the reader, never prescribe, and never mention specific financial products. Respond " +
	"with only the educational text, no formatting."
