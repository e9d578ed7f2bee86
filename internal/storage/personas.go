package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// SavePersonaAssignments appends a run's persona assignments for a user.
func (s *SQLiteStorage) SavePersonaAssignments(ctx context.Context, assignments []model.PersonaAssignment) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, a := range assignments {
		if a.UserID == "" || !a.PersonaType.Valid() {
			return fmt.Errorf("%w: assignment requires user ID and a valid persona type", ErrNilParameter)
		}
		criteria, err := json.Marshal(a.MatchedCriteria)
		if err != nil {
			return fmt.Errorf("failed to marshal matched criteria: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO persona_assignments (user_id, persona_type, priority, rationale, matched_criteria, assigned_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.UserID, a.PersonaType, a.Priority, a.Rationale, string(criteria), a.AssignedAt.UTC()); err != nil {
			return fmt.Errorf("failed to save persona assignment: %w", err)
		}
	}

	return tx.Commit()
}

// GetPersonaAssignments retrieves a user's assignments in priority order.
func (s *SQLiteStorage) GetPersonaAssignments(ctx context.Context, userID string) ([]model.PersonaAssignment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, persona_type, priority, rationale, matched_criteria, assigned_at
		FROM persona_assignments
		WHERE user_id = ?
		ORDER BY priority, assigned_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query persona assignments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assignments []model.PersonaAssignment
	for rows.Next() {
		var a model.PersonaAssignment
		var criteria string
		if err := rows.Scan(&a.UserID, &a.PersonaType, &a.Priority, &a.Rationale, &criteria, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan persona assignment: %w", err)
		}
		if err := json.Unmarshal([]byte(criteria), &a.MatchedCriteria); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matched criteria: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
