package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrInvalidTransaction    = errors.New("invalid transaction")
	ErrInvalidAccount        = errors.New("invalid account")
	ErrInvalidSignalResult   = errors.New("invalid signal result")
	ErrInvalidRecommendation = errors.New("invalid recommendation")
	ErrInvalidStatus         = errors.New("invalid recommendation status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.AccountID == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidTransaction)
	}
	if txn.Direction != model.DirectionDebit && txn.Direction != model.DirectionCredit {
		return fmt.Errorf("%w: invalid direction %q", ErrInvalidTransaction, txn.Direction)
	}
	return nil
}

// validateAccount validates a single account.
func validateAccount(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: account", ErrNilParameter)
	}
	if account.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidAccount)
	}
	if account.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidAccount)
	}
	return nil
}

// validateSignalResult validates a signal result at the storage boundary.
// Malformed bundles fail fast here rather than being silently persisted.
func validateSignalResult(result *model.SignalResult) error {
	if result == nil {
		return fmt.Errorf("%w: signal result", ErrNilParameter)
	}
	if err := result.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignalResult, err)
	}
	return nil
}

// validateRecommendation validates a recommendation before persistence.
func validateRecommendation(rec *model.Recommendation) error {
	if rec == nil {
		return fmt.Errorf("%w: recommendation", ErrNilParameter)
	}
	if rec.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecommendation)
	}
	if rec.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidRecommendation)
	}
	if rec.Disclaimer == "" {
		return fmt.Errorf("%w: missing disclaimer", ErrInvalidRecommendation)
	}
	return nil
}

// validateStatus ensures a recommendation status transition target is known.
func validateStatus(status model.RecommendationStatus) error {
	switch status {
	case model.StatusPending, model.StatusApproved, model.StatusRejected, model.StatusFlagged:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}
