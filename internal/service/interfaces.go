// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Storage defines the contract for the persistence layer consumed by the
// analytics core. The core never assumes an in-process implementation.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)

	// Raw record operations
	SaveAccounts(ctx context.Context, accounts []model.Account) error
	GetAccounts(ctx context.Context, userID string) ([]model.Account, error)
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionsInWindow(ctx context.Context, userID string, start, end time.Time) ([]model.Transaction, error)
	SaveLiabilities(ctx context.Context, liabilities []model.Liability) error
	GetLiabilities(ctx context.Context, userID string) ([]model.Liability, error)

	// Signal operations; save overwrites any prior result for (user, window)
	SaveSignalResult(ctx context.Context, result *model.SignalResult) error
	GetSignalResult(ctx context.Context, userID string, window model.Window) (*model.SignalResult, error)

	// Persona operations
	SavePersonaAssignments(ctx context.Context, assignments []model.PersonaAssignment) error
	GetPersonaAssignments(ctx context.Context, userID string) ([]model.PersonaAssignment, error)

	// Recommendation operations
	SaveRecommendation(ctx context.Context, rec *model.Recommendation) error
	GetRecommendations(ctx context.Context, userID string) ([]model.Recommendation, error)
	UpdateRecommendationStatus(ctx context.Context, recommendationID string, status model.RecommendationStatus) error

	// Consent operations
	SaveConsent(ctx context.Context, consent *model.Consent) error
	GetConsent(ctx context.Context, userID string) (*model.Consent, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ContentGenerator produces educational prose for a recommendation prompt.
// Implementations must never fail: retry, backoff, and fallback text live
// entirely inside the generator so the engine's control flow stays linear.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// RecordFetcher pulls raw account, transaction, and liability records from
// an external aggregator for one user.
type RecordFetcher interface {
	GetAccounts(ctx context.Context, userID string) ([]model.Account, error)
	GetTransactions(ctx context.Context, userID string, startDate, endDate time.Time) ([]model.Transaction, error)
	GetLiabilities(ctx context.Context, userID string) ([]model.Liability, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
