// Package catalog provides stateless, deterministic matching of partner
// offers and education articles against persona and signal state.
package catalog

import "github.com/sagebrush-labs/finsight/internal/model"

// balanceTransferMinUtilization gates the balance-transfer card: it is only
// worth presenting once a card is carrying a real balance.
const balanceTransferMinUtilization = 0.5

// offerRule pairs a catalog offer with its eligibility predicate.
type offerRule struct {
	offer   model.PartnerOffer
	matches func(persona model.PersonaType, signals *model.SignalResult) bool
}

// offerRules is the fixed partner-offer catalog.
var offerRules = []offerRule{
	{
		offer: model.PartnerOffer{
			ID:          "offer-balance-transfer",
			Partner:     "Meridian Card Services",
			ProductType: model.ProductBalanceTransferCard,
			Title:       "0% intro APR balance transfer card",
			Description: "Move high-interest balances to a card with a 15-month 0% introductory APR.",
			URL:         "https://partners.example.com/balance-transfer",
		},
		matches: func(persona model.PersonaType, signals *model.SignalResult) bool {
			return persona == model.PersonaHighUtilization &&
				signals.Credit.HighestUtilization >= balanceTransferMinUtilization
		},
	},
	{
		offer: model.PartnerOffer{
			ID:          "offer-credit-counseling",
			Partner:     "ClearPath Counseling",
			ProductType: model.ProductCreditCounseling,
			Title:       "Free credit counseling session",
			Description: "A certified counselor can help map out a payoff plan at no cost.",
			URL:         "https://partners.example.com/credit-counseling",
		},
		matches: func(persona model.PersonaType, signals *model.SignalResult) bool {
			return persona == model.PersonaHighUtilization && signals.Credit.AnyOverdue
		},
	},
	{
		offer: model.PartnerOffer{
			ID:          "offer-high-yield-savings",
			Partner:     "Harvest Bank",
			ProductType: model.ProductHighYieldSavings,
			Title:       "High-yield savings account",
			Description: "Earn a competitive APY on the savings you're already building.",
			URL:         "https://partners.example.com/high-yield-savings",
		},
		matches: func(persona model.PersonaType, _ *model.SignalResult) bool {
			return persona == model.PersonaSavingsBuilder || persona == model.PersonaLowIncomeStabilizer
		},
	},
	{
		offer: model.PartnerOffer{
			ID:          "offer-budgeting-app",
			Partner:     "Evenflow",
			ProductType: model.ProductBudgetingApp,
			Title:       "Budgeting app for variable income",
			Description: "Smooth irregular paychecks into a predictable monthly budget.",
			URL:         "https://partners.example.com/budgeting-app",
		},
		matches: func(persona model.PersonaType, _ *model.SignalResult) bool {
			return persona == model.PersonaVariableIncome || persona == model.PersonaLowIncomeStabilizer
		},
	},
	{
		offer: model.PartnerOffer{
			ID:          "offer-subscription-manager",
			Partner:     "Trimly",
			ProductType: model.ProductSubscriptionManager,
			Title:       "Subscription tracking and cancellation service",
			Description: "Find, track, and cancel recurring charges in one place.",
			URL:         "https://partners.example.com/subscription-manager",
		},
		matches: func(persona model.PersonaType, signals *model.SignalResult) bool {
			return persona == model.PersonaSubscriptionHeavy && signals.Subscriptions.RecurringCount > 0
		},
	},
}

// MatchOffers returns every catalog offer whose rule matches the persona and
// signal state. The result order follows the fixed catalog order.
func MatchOffers(persona model.PersonaType, signals *model.SignalResult) []model.PartnerOffer {
	if signals == nil {
		return nil
	}
	var matched []model.PartnerOffer
	for _, rule := range offerRules {
		if rule.matches(persona, signals) {
			matched = append(matched, rule.offer)
		}
	}
	return matched
}
