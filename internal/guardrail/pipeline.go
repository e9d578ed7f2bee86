// Package guardrail validates and transforms candidate recommendations
// before release: consent, eligibility exclusions, tone lint, disclaimer
// enforcement, and partner-offer filtering.
package guardrail

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Outcome is the result of running the full pipeline on one recommendation.
// Persisting or discarding the recommendation is the caller's decision.
type Outcome struct {
	Recommendation *model.Recommendation
	Results        []model.GuardrailResult
	Passed         bool
}

// check is one named guardrail. Checks are independent; run receives the
// recommendation it may mutate plus the user and signal context.
type check struct {
	name string
	run  func(rec *model.Recommendation, user *model.User, signals *model.SignalResult) model.GuardrailResult
}

// Pipeline runs the fixed, ordered guardrail checks.
type Pipeline struct {
	logger *slog.Logger
	checks []check
	now    func() time.Time
}

// NewPipeline creates the guardrail pipeline.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger: logger.With("component", "guardrail"),
		now:    time.Now,
	}
	p.checks = []check{
		{name: CheckConsent, run: p.checkConsent},
		{name: CheckEligibility, run: p.checkEligibility},
		{name: CheckTone, run: p.checkTone},
		{name: CheckDisclaimer, run: p.checkDisclaimer},
		{name: CheckOfferFilter, run: p.filterOffers},
	}
	return p
}

// Apply runs every check in order against the recommendation. Only a consent
// failure short-circuits; all other checks still run and report. The
// returned recommendation may have been mutated (offers stripped, disclaimer
// injected) and carries the result list in its decision trace. Re-applying
// to an already-passed recommendation yields the identical outcome.
func (p *Pipeline) Apply(rec *model.Recommendation, user *model.User, signals *model.SignalResult) (*Outcome, error) {
	if rec == nil {
		return nil, fmt.Errorf("apply guardrails: recommendation is required")
	}
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("apply guardrails: user is required")
	}
	if signals == nil {
		return nil, fmt.Errorf("apply guardrails: signal result is required")
	}
	if err := signals.Validate(); err != nil {
		return nil, fmt.Errorf("apply guardrails: %w", err)
	}

	results := make([]model.GuardrailResult, 0, len(p.checks))
	passed := true

	for i, c := range p.checks {
		result := c.run(rec, user, signals)
		results = append(results, result)
		if !result.Passed {
			passed = false
			p.logger.Warn("guardrail check failed",
				"check", c.name,
				"recommendation_id", rec.ID,
				"reason", result.Reason)
			// A non-consenting user gets nothing evaluated further.
			if i == 0 {
				break
			}
		}
	}

	// Replace, never append: re-running the pipeline must not grow the trace.
	rec.Trace.GuardrailResults = results

	return &Outcome{
		Recommendation: rec,
		Results:        results,
		Passed:         passed,
	}, nil
}

// result is a small helper for building guardrail results.
func (p *Pipeline) result(name string, passed bool, reason string) model.GuardrailResult {
	return model.GuardrailResult{
		EvaluatedAt: p.now().UTC(),
		Name:        name,
		Passed:      passed,
		Reason:      reason,
	}
}
