package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/model"
)

// SaveRecommendation appends one recommendation with its decision trace.
func (s *SQLiteStorage) SaveRecommendation(ctx context.Context, rec *model.Recommendation) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecommendation(rec); err != nil {
		return err
	}

	actionItems, err := json.Marshal(rec.ActionItems)
	if err != nil {
		return fmt.Errorf("failed to marshal action items: %w", err)
	}
	offers, err := json.Marshal(rec.Offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}
	articles, err := json.Marshal(rec.Articles)
	if err != nil {
		return fmt.Errorf("failed to marshal articles: %w", err)
	}
	trace, err := json.Marshal(rec.Trace)
	if err != nil {
		return fmt.Errorf("failed to marshal decision trace: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, user_id, persona_type, template_id, category, title,
			description, rationale, educational_content, disclaimer, status,
			action_items, offers, articles, trace, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.PersonaType, rec.TemplateID, rec.Category, rec.Title,
		rec.Description, rec.Rationale, rec.EducationalContent, rec.Disclaimer, rec.Status,
		string(actionItems), string(offers), string(articles), string(trace), rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

// GetRecommendations retrieves all recommendations for a user, newest first.
func (s *SQLiteStorage) GetRecommendations(ctx context.Context, userID string) ([]model.Recommendation, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, persona_type, template_id, category, title, description,
		       rationale, COALESCE(educational_content, ''), disclaimer, status,
		       action_items, offers, articles, trace, created_at
		FROM recommendations
		WHERE user_id = ?
		ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recommendations []model.Recommendation
	for rows.Next() {
		var rec model.Recommendation
		var actionItems, offers, articles, trace string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.PersonaType, &rec.TemplateID,
			&rec.Category, &rec.Title, &rec.Description, &rec.Rationale,
			&rec.EducationalContent, &rec.Disclaimer, &rec.Status,
			&actionItems, &offers, &articles, &trace, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		if err := json.Unmarshal([]byte(actionItems), &rec.ActionItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal action items: %w", err)
		}
		if err := json.Unmarshal([]byte(offers), &rec.Offers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal offers: %w", err)
		}
		if err := json.Unmarshal([]byte(articles), &rec.Articles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal articles: %w", err)
		}
		if err := json.Unmarshal([]byte(trace), &rec.Trace); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decision trace: %w", err)
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, rows.Err()
}

// UpdateRecommendationStatus applies an external status transition.
func (s *SQLiteStorage) UpdateRecommendationStatus(ctx context.Context, recommendationID string, status model.RecommendationStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(recommendationID, "recommendationID"); err != nil {
		return err
	}
	if err := validateStatus(status); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE recommendations SET status = ? WHERE id = ?`, status, recommendationID)
	if err != nil {
		return fmt.Errorf("failed to update recommendation status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recommendation %s: %w", recommendationID, common.ErrNotFound)
	}
	return nil
}
