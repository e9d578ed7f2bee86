package model

import "time"

// StandardDisclaimer is the exact disclaimer every released recommendation
// must carry. The guardrail pipeline rejects any other wording.
const StandardDisclaimer = "This is educational information, not financial advice. " +
	"Consider consulting a licensed financial advisor for guidance specific to your situation."

// RecommendationStatus tracks a recommendation through operator review.
type RecommendationStatus string

// Recommendation status constants.
const (
	StatusPending  RecommendationStatus = "PENDING"
	StatusApproved RecommendationStatus = "APPROVED"
	StatusRejected RecommendationStatus = "REJECTED"
	StatusFlagged  RecommendationStatus = "FLAGGED"
)

// Recommendation is one persona-targeted piece of guidance for a user.
// The engine creates it once; only the guardrail pipeline mutates it
// (offer filtering, disclaimer injection, trace append) plus external
// status transitions.
type Recommendation struct {
	CreatedAt          time.Time
	ID                 string
	UserID             string
	PersonaType        PersonaType
	TemplateID         string
	Category           string
	Title              string
	Description        string
	Rationale          string
	EducationalContent string
	Disclaimer         string
	Status             RecommendationStatus
	ActionItems        []string
	Offers             []PartnerOffer
	Articles           []ArticleMatch
	Trace              DecisionTrace
}

// DecisionTrace is the audit record describing how a recommendation was
// produced and which guardrails it passed through.
type DecisionTrace struct {
	GeneratedAt     time.Time
	PersonaMatched  PersonaType
	TemplateID      string
	Prompt          string
	SignalsUsed     []string // Signal category names, never values
	Confidence      float64
	GuardrailResults []GuardrailResult
}

// GuardrailResult is the pass/fail outcome of one named guardrail check.
type GuardrailResult struct {
	EvaluatedAt time.Time
	Name        string
	Reason      string
	Passed      bool
}
