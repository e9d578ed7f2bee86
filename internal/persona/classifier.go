package persona

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Classifier assigns personas by evaluating the fixed criteria table.
type Classifier struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewClassifier creates a persona classifier.
func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{
		logger: logger.With("component", "persona"),
		now:    time.Now,
	}
}

// Assign evaluates every criterion against the signal bundle and returns all
// matches sorted ascending by priority; index 0 is the primary persona. A
// user matching nothing gets an empty slice, which is a valid outcome.
func (c *Classifier) Assign(userID string, result *model.SignalResult) ([]model.PersonaAssignment, error) {
	if userID == "" {
		return nil, fmt.Errorf("assign personas: user ID is required")
	}
	if result == nil {
		return nil, fmt.Errorf("assign personas: signal result is required")
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("assign personas: %w", err)
	}

	assignedAt := c.now().UTC()
	var assignments []model.PersonaAssignment

	for _, criterion := range criteria {
		matched, labels, rationale := criterion.match(result)
		if !matched {
			continue
		}
		assignments = append(assignments, model.PersonaAssignment{
			AssignedAt:      assignedAt,
			UserID:          userID,
			PersonaType:     criterion.persona,
			Priority:        criterion.persona.Priority(),
			Rationale:       rationale,
			MatchedCriteria: labels,
		})
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].Priority < assignments[j].Priority
	})

	c.logger.Debug("personas assigned",
		"user_id", userID,
		"window", result.Window,
		"count", len(assignments))

	return assignments, nil
}

// Primary returns the highest-urgency persona from a sorted assignment list.
func Primary(assignments []model.PersonaAssignment) (model.PersonaType, bool) {
	if len(assignments) == 0 {
		return "", false
	}
	return assignments[0].PersonaType, true
}
