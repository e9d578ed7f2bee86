package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/service"
)

// FallbackText is returned whenever generation cannot succeed. Recipients
// always get something safe to read.
const FallbackText = "Everyone's financial journey is different. Consider exploring the " +
	"resources below for ideas that fit your situation, and know that small steps add up."

// Generator wraps a provider client with rate limiting, caching, bounded
// retry, and fallback. Its Generate method structurally cannot fail, which
// keeps the recommendation engine's control flow linear.
type Generator struct {
	client      Client
	cache       *promptCache
	rateLimiter *rateLimiter
	logger      *slog.Logger
	retryOpts   service.RetryOptions
}

// NewGenerator creates a content generator from the configuration.
func NewGenerator(cfg Config, logger *slog.Logger) (*Generator, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return NewGeneratorWithClient(client, cfg, logger), nil
}

// NewGeneratorWithClient wraps an existing provider client; tests use this
// to inject failing clients.
func NewGeneratorWithClient(client Client, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Generator{
		client:      client,
		cache:       newPromptCache(cfg.CacheTTL),
		rateLimiter: newRateLimiter(cfg.RateLimit),
		logger:      logger.With("component", "content"),
		retryOpts:   retryOpts,
	}
}

// Generate produces educational text for the prompt. On any failure, after
// bounded retry with exponential backoff, it degrades to FallbackText; it
// never propagates an error.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	key := cacheKey(prompt)
	if text, found := g.cache.get(key); found {
		g.logger.Debug("cache hit for prompt")
		return text
	}

	if err := g.rateLimiter.wait(ctx); err != nil {
		g.logger.Warn("rate limiter interrupted, using fallback", "error", err)
		return FallbackText
	}

	var text string
	err := common.WithRetry(ctx, func() error {
		result, err := g.client.Complete(ctx, prompt)
		if err != nil {
			g.logger.Warn("content generation attempt failed", "error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}
		text = result
		return nil
	}, g.retryOpts)

	if err != nil {
		g.logger.Warn("content generation exhausted retries, using fallback", "error", err)
		return FallbackText
	}

	g.cache.set(key, text)
	return text
}

// Close stops background goroutines and cleans up resources.
func (g *Generator) Close() error {
	if g.cache != nil {
		g.cache.Close()
	}
	if g.rateLimiter != nil {
		g.rateLimiter.Close()
	}
	return nil
}
