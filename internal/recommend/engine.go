package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sagebrush-labs/finsight/internal/catalog"
	"github.com/sagebrush-labs/finsight/internal/model"
	"github.com/sagebrush-labs/finsight/internal/service"
)

// DefaultTargetCount is how many recommendations a run aims to produce.
const DefaultTargetCount = 5

// Engine selects eligible templates for a user's personas and renders them
// into recommendations.
type Engine struct {
	generator service.ContentGenerator
	logger    *slog.Logger
	library   []Template
	now       func() time.Time
}

// NewEngine creates a recommendation engine with the default template library.
func NewEngine(generator service.ContentGenerator, logger *slog.Logger) *Engine {
	return NewEngineWithLibrary(generator, DefaultTemplates(), logger)
}

// NewEngineWithLibrary creates an engine with a custom template library.
func NewEngineWithLibrary(generator service.ContentGenerator, library []Template, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		generator: generator,
		logger:    logger.With("component", "recommend"),
		library:   library,
		now:       time.Now,
	}
}

// Generate renders up to targetCount recommendations: the primary persona's
// eligible templates first, then one template per secondary persona in
// priority order until the target is reached or templates exhaust. A failure
// rendering one template is logged and skipped, never fatal to the batch.
func (e *Engine) Generate(ctx context.Context, user *model.User, signals *model.SignalResult, personas []model.PersonaAssignment, targetCount int) ([]model.Recommendation, error) {
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("generate recommendations: user is required")
	}
	if signals == nil {
		return nil, fmt.Errorf("generate recommendations: signal result is required")
	}
	if err := signals.Validate(); err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}
	if targetCount <= 0 {
		targetCount = DefaultTargetCount
	}
	if len(personas) == 0 {
		return nil, nil
	}

	selected := e.selectTemplates(user, signals, personas, targetCount)

	recommendations := make([]model.Recommendation, 0, len(selected))
	for _, t := range selected {
		rec, err := e.render(ctx, t, user, signals)
		if err != nil {
			e.logger.Error("failed to render template, skipping",
				"template_id", t.ID,
				"user_id", user.ID,
				"error", err)
			continue
		}
		recommendations = append(recommendations, *rec)
	}

	e.logger.Info("recommendations generated",
		"user_id", user.ID,
		"persona", personas[0].PersonaType,
		"count", len(recommendations))

	return recommendations, nil
}

// selectTemplates picks the primary persona's eligible templates, then
// backfills one per secondary persona per round.
func (e *Engine) selectTemplates(user *model.User, signals *model.SignalResult, personas []model.PersonaAssignment, targetCount int) []Template {
	used := make(map[string]bool)
	var selected []Template

	primary := personas[0].PersonaType
	for _, t := range templatesForPersona(e.library, primary, user, signals) {
		if len(selected) >= targetCount {
			return selected
		}
		selected = append(selected, t)
		used[t.ID] = true
	}

	secondaries := personas[1:]
	for len(selected) < targetCount {
		added := false
		for _, p := range secondaries {
			if len(selected) >= targetCount {
				break
			}
			for _, t := range templatesForPersona(e.library, p.PersonaType, user, signals) {
				if used[t.ID] {
					continue
				}
				selected = append(selected, t)
				used[t.ID] = true
				added = true
				break
			}
		}
		if !added {
			break
		}
	}

	return selected
}

// render materializes one template into a recommendation. Template closures
// come from a library that may be extended by callers, so a panicking
// closure is contained here rather than taking down the batch.
func (e *Engine) render(ctx context.Context, t Template, user *model.User, signals *model.SignalResult) (rec *model.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("template %s panicked: %v", t.ID, r)
		}
	}()

	rationale := t.Rationale(signals)
	if rationale == "" {
		return nil, fmt.Errorf("template %s produced an empty rationale", t.ID)
	}
	actionItems := t.ActionItems(signals)

	prompt := buildPrompt(t.Title, rationale)
	educational := e.generator.Generate(ctx, prompt)

	var offers []model.PartnerOffer
	if t.AttachOffers {
		offers = catalog.MatchOffers(t.Persona, signals)
	}
	articles := catalog.MatchArticles(t.Persona, signals)

	createdAt := e.now().UTC()
	return &model.Recommendation{
		CreatedAt:          createdAt,
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		PersonaType:        t.Persona,
		TemplateID:         t.ID,
		Category:           t.Category,
		Title:              t.Title,
		Description:        t.Description,
		Rationale:          rationale,
		EducationalContent: educational,
		Disclaimer:         model.StandardDisclaimer,
		Status:             model.StatusPending,
		ActionItems:        actionItems,
		Offers:             offers,
		Articles:           articles,
		Trace: model.DecisionTrace{
			GeneratedAt:    createdAt,
			PersonaMatched: t.Persona,
			TemplateID:     t.ID,
			Prompt:         prompt,
			SignalsUsed:    t.SignalsUsed,
			Confidence:     t.Confidence,
		},
	}, nil
}

// buildPrompt assembles the content-generation prompt from the template
// title and rendered rationale. The prompt is recorded in the decision trace.
func buildPrompt(title, rationale string) string {
	return fmt.Sprintf("Write educational content for a personal finance recommendation titled %q. Context: %s", title, rationale)
}
