// Package pipeline orchestrates the nightly batch run: signal detection,
// persona classification, recommendation generation, and guardrail review
// for every user in storage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/guardrail"
	"github.com/sagebrush-labs/finsight/internal/model"
	"github.com/sagebrush-labs/finsight/internal/persona"
	"github.com/sagebrush-labs/finsight/internal/recommend"
	"github.com/sagebrush-labs/finsight/internal/service"
	"github.com/sagebrush-labs/finsight/internal/signal"
)

// Config holds configuration options for the batch pipeline.
type Config struct {
	// TargetCount is how many recommendations to aim for per user.
	TargetCount int
	// Force recomputes users that already have recommendations.
	Force bool
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		TargetCount: recommend.DefaultTargetCount,
	}
}

// Stats summarizes one batch run.
type Stats struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	UsersProcessed  int
	UsersSkipped    int
	UsersFailed     int
	Recommendations int
	Flagged         int
}

// Pipeline wires the analytics stages together over a shared storage layer.
type Pipeline struct {
	storage    service.Storage
	detector   *signal.Detector
	classifier *persona.Classifier
	engine     *recommend.Engine
	guardrails *guardrail.Pipeline
	logger     *slog.Logger
	cfg        Config
	now        func() time.Time
}

// New creates a batch pipeline with the given dependencies.
func New(storage service.Storage, generator service.ContentGenerator, logger *slog.Logger, cfg Config) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TargetCount <= 0 {
		cfg.TargetCount = recommend.DefaultTargetCount
	}
	return &Pipeline{
		storage:    storage,
		detector:   signal.NewDetector(),
		classifier: persona.NewClassifier(logger),
		engine:     recommend.NewEngine(generator, logger),
		guardrails: guardrail.NewPipeline(logger),
		logger:     logger.With("component", "pipeline"),
		cfg:        cfg,
		now:        time.Now,
	}
}

// Run processes every user in storage. A failure on one user is logged and
// counted; it never aborts the batch. Only context cancellation stops the run.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	stats := &Stats{StartedAt: p.now().UTC()}

	users, err := p.storage.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	p.logger.Info("batch run starting", "users", len(users))

	for _, user := range users {
		select {
		case <-ctx.Done():
			stats.FinishedAt = p.now().UTC()
			return stats, ctx.Err()
		default:
		}

		result, err := p.RunUser(ctx, user.ID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				stats.FinishedAt = p.now().UTC()
				return stats, err
			}
			p.logger.Error("user run failed", "user_id", user.ID, "error", err)
			stats.UsersFailed++
			continue
		}

		if result.Skipped {
			stats.UsersSkipped++
			continue
		}

		stats.UsersProcessed++
		stats.Recommendations += result.Saved
		stats.Flagged += result.Flagged
	}

	stats.FinishedAt = p.now().UTC()
	p.logger.Info("batch run finished",
		"processed", stats.UsersProcessed,
		"skipped", stats.UsersSkipped,
		"failed", stats.UsersFailed,
		"recommendations", stats.Recommendations,
		"flagged", stats.Flagged,
		"duration", stats.FinishedAt.Sub(stats.StartedAt))

	return stats, nil
}

// UserResult reports what one user's run produced.
type UserResult struct {
	Saved   int
	Flagged int
	Skipped bool
}

// RunUser executes the full pipeline for one user: signals for both windows,
// personas and recommendations from the long window, guardrails on every
// recommendation before it is saved.
func (p *Pipeline) RunUser(ctx context.Context, userID string) (*UserResult, error) {
	user, err := p.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !p.cfg.Force {
		existing, err := p.storage.GetRecommendations(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			p.logger.Info("user already has recommendations, skipping", "user_id", userID)
			return &UserResult{Skipped: true}, nil
		}
	}

	accounts, err := p.storage.GetAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	liabilities, err := p.storage.GetLiabilities(ctx, userID)
	if err != nil {
		return nil, err
	}

	var longWindow *model.SignalResult
	for _, window := range []model.Window{model.Window30Days, model.Window180Days} {
		result, err := p.detectWindow(ctx, user, accounts, liabilities, window)
		if err != nil {
			return nil, err
		}
		if window == model.Window180Days {
			longWindow = result
		}
	}

	assignments, err := p.classifier.Assign(userID, longWindow)
	if err != nil {
		return nil, err
	}
	if err := p.storage.SavePersonaAssignments(ctx, assignments); err != nil {
		return nil, err
	}

	if !user.Consent.Active {
		p.logger.Info("user has no active consent, skipping recommendations", "user_id", userID)
		return &UserResult{}, nil
	}

	recs, err := p.engine.Generate(ctx, user, longWindow, assignments, p.cfg.TargetCount)
	if err != nil {
		return nil, err
	}

	result := &UserResult{}
	for i := range recs {
		outcome, err := p.guardrails.Apply(&recs[i], user, longWindow)
		if err != nil {
			return nil, err
		}
		if !outcome.Passed {
			recs[i].Status = model.StatusFlagged
			result.Flagged++
		}
		if err := p.storage.SaveRecommendation(ctx, &recs[i]); err != nil {
			return nil, err
		}
		result.Saved++
	}

	p.logger.Info("user run complete",
		"user_id", userID,
		"personas", len(assignments),
		"recommendations", result.Saved,
		"flagged", result.Flagged)

	return result, nil
}

// detectWindow computes and persists the signal result for one window. The
// window bounds end at the time of the run and are inclusive of today.
func (p *Pipeline) detectWindow(ctx context.Context, user *model.User, accounts []model.Account, liabilities []model.Liability, window model.Window) (*model.SignalResult, error) {
	end := p.now().UTC()
	start := end.AddDate(0, 0, -window.Days())

	transactions, err := p.storage.GetTransactionsInWindow(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}

	result, err := p.detector.Detect(user, accounts, transactions, liabilities, window)
	if err != nil {
		return nil, fmt.Errorf("signal detection failed for window %s: %w", window, err)
	}

	if err := p.storage.SaveSignalResult(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// Sync pulls fresh records from the aggregator for one user and persists
// them. It is invoked ahead of a run when a fetcher is configured.
func (p *Pipeline) Sync(ctx context.Context, fetcher service.RecordFetcher, userID string, window model.Window) error {
	if fetcher == nil {
		return fmt.Errorf("record fetcher is required")
	}
	if !window.Valid() {
		return common.ErrInvalidWindow
	}

	accounts, err := fetcher.GetAccounts(ctx, userID)
	if err != nil {
		return fmt.Errorf("sync accounts: %w", err)
	}
	if err := p.storage.SaveAccounts(ctx, accounts); err != nil {
		return err
	}

	end := p.now().UTC()
	start := end.AddDate(0, 0, -window.Days())
	transactions, err := fetcher.GetTransactions(ctx, userID, start, end)
	if err != nil {
		return fmt.Errorf("sync transactions: %w", err)
	}
	if err := p.storage.SaveTransactions(ctx, transactions); err != nil {
		return err
	}

	liabilities, err := fetcher.GetLiabilities(ctx, userID)
	if err != nil {
		return fmt.Errorf("sync liabilities: %w", err)
	}
	if err := p.storage.SaveLiabilities(ctx, liabilities); err != nil {
		return err
	}

	p.logger.Info("sync complete",
		"user_id", userID,
		"accounts", len(accounts),
		"transactions", len(transactions),
		"liabilities", len(liabilities))

	return nil
}
