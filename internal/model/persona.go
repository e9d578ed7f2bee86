package model

import "time"

// PersonaType names a behavioral segment a user can be assigned to.
type PersonaType string

// Persona constants, one per classifier criterion.
const (
	PersonaHighUtilization       PersonaType = "HIGH_UTILIZATION"
	PersonaVariableIncome        PersonaType = "VARIABLE_INCOME_BUDGETER"
	PersonaSubscriptionHeavy     PersonaType = "SUBSCRIPTION_HEAVY"
	PersonaSavingsBuilder        PersonaType = "SAVINGS_BUILDER"
	PersonaLowIncomeStabilizer   PersonaType = "LOW_INCOME_STABILIZER"
)

// Priority returns the fixed urgency rank of the persona. Lower is more
// urgent; index 0 of a user's sorted assignments is the primary persona.
func (p PersonaType) Priority() int {
	switch p {
	case PersonaHighUtilization:
		return 1
	case PersonaVariableIncome:
		return 2
	case PersonaSubscriptionHeavy:
		return 3
	case PersonaSavingsBuilder:
		return 4
	case PersonaLowIncomeStabilizer:
		return 5
	default:
		return 0
	}
}

// Valid reports whether the persona type is one of the known segments.
func (p PersonaType) Valid() bool {
	return p.Priority() > 0
}

// PersonaAssignment records that a user matched one persona's criteria.
type PersonaAssignment struct {
	AssignedAt      time.Time
	UserID          string
	PersonaType     PersonaType
	Rationale       string
	MatchedCriteria []string
	Priority        int
}
