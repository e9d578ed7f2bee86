// Package recommend renders persona-targeted recommendations from a template
// library, enriched with externally generated educational prose and
// partner-offer matches.
package recommend

import (
	"sort"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Template is one renderable recommendation blueprint. Its closures are pure
// functions of the user and signal bundle so rendering stays deterministic.
type Template struct {
	ID          string
	Persona     model.PersonaType
	Category    string
	Title       string
	Description string
	SignalsUsed []string // Signal category names referenced by the renderers
	Priority    int      // Lower renders first within a persona
	Confidence  float64
	AttachOffers bool

	// Eligible gates the template for a specific user and signal state.
	Eligible func(user *model.User, signals *model.SignalResult) bool
	// Rationale renders the data-backed explanation for the recommendation.
	Rationale func(signals *model.SignalResult) string
	// ActionItems renders concrete next steps, usually with numeric targets.
	ActionItems func(signals *model.SignalResult) []string
}

// templatesForPersona returns the eligible templates for one persona, sorted
// by template priority.
func templatesForPersona(library []Template, persona model.PersonaType, user *model.User, signals *model.SignalResult) []Template {
	var eligible []Template
	for _, t := range library {
		if t.Persona != persona {
			continue
		}
		if t.Eligible != nil && !t.Eligible(user, signals) {
			continue
		}
		eligible = append(eligible, t)
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Priority < eligible[j].Priority
	})
	return eligible
}
