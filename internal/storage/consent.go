package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/model"
)

// SaveConsent inserts or updates a user's consent record.
func (s *SQLiteStorage) SaveConsent(ctx context.Context, consent *model.Consent) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if consent == nil {
		return fmt.Errorf("%w: consent", ErrNilParameter)
	}
	if err := validateString(consent.UserID, "consent.UserID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO consents (user_id, active, granted_at, revoked_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			active = excluded.active,
			granted_at = excluded.granted_at,
			revoked_at = excluded.revoked_at`,
		consent.UserID, consent.Active, nullableTime(consent.GrantedAt), nullableTime(consent.RevokedAt))
	if err != nil {
		return fmt.Errorf("failed to save consent: %w", err)
	}
	return nil
}

// GetConsent retrieves a user's consent record.
func (s *SQLiteStorage) GetConsent(ctx context.Context, userID string) (*model.Consent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var consent model.Consent
	var granted, revoked sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, active, granted_at, revoked_at FROM consents WHERE user_id = ?`, userID).
		Scan(&consent.UserID, &consent.Active, &granted, &revoked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("consent for user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consent: %w", err)
	}

	if granted.Valid {
		consent.GrantedAt = granted.Time
	}
	if revoked.Valid {
		consent.RevokedAt = revoked.Time
	}
	return &consent, nil
}

// nullableTime maps a zero time onto NULL.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
