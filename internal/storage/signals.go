package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/model"
)

// signalPayload is the JSON shape stored for one signal result. The signal
// bundle is written and read whole; recompute overwrites, never merges.
type signalPayload struct {
	Credit        model.CreditSignals       `json:"credit"`
	Subscriptions model.SubscriptionSignals `json:"subscriptions"`
	Savings       model.SavingsSignals      `json:"savings"`
	Income        model.IncomeSignals       `json:"income"`
}

// SaveSignalResult upserts the signal result for (user, window).
func (s *SQLiteStorage) SaveSignalResult(ctx context.Context, result *model.SignalResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSignalResult(result); err != nil {
		return err
	}

	payload, err := json.Marshal(signalPayload{
		Credit:        result.Credit,
		Subscriptions: result.Subscriptions,
		Savings:       result.Savings,
		Income:        result.Income,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal signal payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO signal_results (user_id, window, computed_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, window) DO UPDATE SET
			computed_at = excluded.computed_at,
			payload = excluded.payload`,
		result.UserID, result.Window, result.ComputedAt.UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save signal result: %w", err)
	}
	return nil
}

// GetSignalResult retrieves the current signal result for (user, window).
func (s *SQLiteStorage) GetSignalResult(ctx context.Context, userID string, window model.Window) (*model.SignalResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if !window.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidWindow, window)
	}

	var computedAt time.Time
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT computed_at, payload FROM signal_results
		WHERE user_id = ? AND window = ?`, userID, window).
		Scan(&computedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("signal result for user %s window %s: %w", userID, window, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signal result: %w", err)
	}

	var decoded signalPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal signal payload: %w", err)
	}

	return &model.SignalResult{
		ComputedAt:    computedAt,
		UserID:        userID,
		Window:        window,
		Credit:        decoded.Credit,
		Subscriptions: decoded.Subscriptions,
		Savings:       decoded.Savings,
		Income:        decoded.Income,
	}, nil
}
