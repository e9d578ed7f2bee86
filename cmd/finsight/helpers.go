package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sagebrush-labs/finsight/internal/config"
	"github.com/sagebrush-labs/finsight/internal/content"
	"github.com/sagebrush-labs/finsight/internal/service"
	"github.com/sagebrush-labs/finsight/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/finsight/finsight.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initGenerator builds the content generator from config. With no provider
// configured it falls back to the deterministic offline provider.
func initGenerator() (*content.Generator, error) {
	cfg := content.Config{
		Provider:       viper.GetString("content.provider"),
		APIKey:         viper.GetString("content.api_key"),
		Model:          viper.GetString("content.model"),
		MaxRetries:     viper.GetInt("content.max_retries"),
		RetryDelay:     viper.GetDuration("content.retry_delay"),
		RequestTimeout: viper.GetDuration("content.request_timeout"),
		CacheTTL:       viper.GetDuration("content.cache_ttl"),
		RateLimit:      viper.GetInt("content.rate_limit"),
		Temperature:    viper.GetFloat64("content.temperature"),
		MaxTokens:      viper.GetInt("content.max_tokens"),
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}

	return content.NewGenerator(cfg, nil)
}
