package recommend

import (
	"fmt"
	"math"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// DefaultTemplates returns the built-in recommendation template library.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:           "high-util-paydown",
			Persona:      model.PersonaHighUtilization,
			Category:     "Debt Reduction",
			Title:        "Bring your credit utilization under 30%",
			Description:  "Paying down your highest-utilization card is an opportunity to cut interest costs and lift your credit score.",
			SignalsUsed:  []string{"credit"},
			Priority:     1,
			Confidence:   0.9,
			AttachOffers: true,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Credit.CardCount > 0 && s.Credit.HighestUtilization > 0.3
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"Your highest card utilization is %.0f%%, and your cards accrue an estimated $%.2f in interest each month.",
					s.Credit.HighestUtilization*100, s.Credit.TotalMonthlyInterest)
			},
			ActionItems: func(s *model.SignalResult) []string {
				target := paydownToUtilization(s.Credit, 0.3)
				return []string{
					fmt.Sprintf("Consider paying an extra $%.0f toward your highest-balance card to reach 30%% utilization.", target),
					"When you're ready, set up automatic payments above the minimum.",
				}
			},
		},
		{
			ID:          "high-util-interest-awareness",
			Persona:     model.PersonaHighUtilization,
			Category:    "Debt Reduction",
			Title:       "See what carrying a balance really costs",
			Description: "Understanding your monthly interest is the first step toward choosing a payoff plan that fits.",
			SignalsUsed: []string{"credit"},
			Priority:    2,
			Confidence:  0.8,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Credit.TotalMonthlyInterest > 10
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"Across %d card(s), you're paying an estimated $%.2f per month in interest, about $%.2f per year.",
					s.Credit.CardCount, s.Credit.TotalMonthlyInterest, s.Credit.TotalMonthlyInterest*12)
			},
			ActionItems: func(s *model.SignalResult) []string {
				return []string{
					fmt.Sprintf("Consider listing your cards by APR; redirecting $%.0f/month at the costliest one shrinks interest fastest.", math.Max(25, s.Credit.TotalMonthlyInterest)),
					"Explore whether a lower-rate option could reduce what you pay to carry the balance.",
				}
			},
		},
		{
			ID:          "variable-income-baseline",
			Persona:     model.PersonaVariableIncome,
			Category:    "Budgeting",
			Title:       "Build a baseline budget for variable income",
			Description: "Anchoring your spending to your leaner months brings stability when paychecks vary.",
			SignalsUsed: []string{"income"},
			Priority:    1,
			Confidence:  0.85,
			AttachOffers: true,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Income.PaymentCount >= 2
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"Your income varies by %.0f%% between payments, with up to %d days between deposits.",
					s.Income.Variability*100, s.Income.LongestGapDays)
			},
			ActionItems: func(s *model.SignalResult) []string {
				buffer := s.Income.MonthlyEquivalent * 0.1
				return []string{
					"Consider building your budget around your lowest recent month of income.",
					fmt.Sprintf("Setting aside about $%.0f from stronger months creates a buffer for gaps.", buffer),
				}
			},
		},
		{
			ID:          "variable-income-gap-cushion",
			Persona:     model.PersonaVariableIncome,
			Category:    "Budgeting",
			Title:       "Create a cushion for income gaps",
			Description: "A dedicated gap fund turns an unpredictable pay schedule into a manageable one.",
			SignalsUsed: []string{"income", "savings"},
			Priority:    2,
			Confidence:  0.75,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Income.HasIncomeGap
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"Your longest stretch without income was %d days, and your savings cover about %.1f months of expenses.",
					s.Income.LongestGapDays, s.Savings.EmergencyFundMonths)
			},
			ActionItems: func(s *model.SignalResult) []string {
				return []string{
					fmt.Sprintf("Consider a gap fund sized to roughly %d days of essential expenses.", s.Income.LongestGapDays),
					"When a larger deposit arrives, moving part of it to savings first can smooth the next gap.",
				}
			},
		},
		{
			ID:           "subscription-audit",
			Persona:      model.PersonaSubscriptionHeavy,
			Category:     "Spending Awareness",
			Title:        "Audit your recurring subscriptions",
			Description:  "A quick review of recurring charges often uncovers easy savings.",
			SignalsUsed:  []string{"subscriptions"},
			Priority:     1,
			Confidence:   0.9,
			AttachOffers: true,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Subscriptions.RecurringCount > 0
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"You have %d recurring merchants totaling about $%.2f per month, %.1f%% of your spending.",
					s.Subscriptions.RecurringCount, s.Subscriptions.MonthlyRecurringSpend, s.Subscriptions.SubscriptionShare)
			},
			ActionItems: func(s *model.SignalResult) []string {
				savings := s.Subscriptions.MonthlyRecurringSpend * 0.25
				return []string{
					fmt.Sprintf("Consider reviewing your %d recurring charges and canceling any you no longer use.", s.Subscriptions.RecurringCount),
					fmt.Sprintf("Trimming a quarter of them would free about $%.0f per month.", savings),
				}
			},
		},
		{
			ID:          "subscription-redirect",
			Persona:     model.PersonaSubscriptionHeavy,
			Category:    "Spending Awareness",
			Title:       "Redirect a canceled subscription into savings",
			Description: "Turning one canceled subscription into an automatic transfer builds savings painlessly.",
			SignalsUsed: []string{"subscriptions", "savings"},
			Priority:    2,
			Confidence:  0.7,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Subscriptions.MonthlyRecurringSpend >= 20
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"Redirecting even one of your $%.2f in monthly recurring charges would grow your savings by $%.0f a year.",
					s.Subscriptions.MonthlyRecurringSpend, s.Subscriptions.MonthlyRecurringSpend*0.25*12)
			},
			ActionItems: func(s *model.SignalResult) []string {
				return []string{
					"Consider picking the subscription you'd miss least and canceling it.",
					"Set up an automatic transfer of the same amount into savings.",
				}
			},
		},
		{
			ID:           "savings-rate-boost",
			Persona:      model.PersonaSavingsBuilder,
			Category:     "Savings Optimization",
			Title:        "Put your growing savings to work",
			Description:  "Your savings habit is strong; a higher-yield home for that balance compounds the progress.",
			SignalsUsed:  []string{"savings"},
			Priority:     1,
			Confidence:   0.85,
			AttachOffers: true,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Savings.TotalBalance > 0
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"You've built $%.2f in savings with $%.2f flowing in monthly and %.1f%% growth this period.",
					s.Savings.TotalBalance, s.Savings.MonthlyInflow, s.Savings.GrowthRatePct)
			},
			ActionItems: func(s *model.SignalResult) []string {
				extra := s.Savings.TotalBalance * 0.04
				return []string{
					fmt.Sprintf("At a 4%% APY, your current balance could earn about $%.0f a year.", extra),
					"Consider comparing your current account's rate with high-yield options.",
				}
			},
		},
		{
			ID:          "savings-emergency-target",
			Persona:     model.PersonaSavingsBuilder,
			Category:    "Savings Optimization",
			Title:       "Set an emergency fund target",
			Description: "A clear months-of-expenses goal gives your saving momentum a finish line.",
			SignalsUsed: []string{"savings"},
			Priority:    2,
			Confidence:  0.75,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Savings.EmergencyFundMonths < 6
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"Your savings currently cover about %.1f months of expenses; many aim for 3-6 months.",
					s.Savings.EmergencyFundMonths)
			},
			ActionItems: func(s *model.SignalResult) []string {
				return []string{
					"Consider choosing a months-of-expenses target that feels right for your situation.",
					fmt.Sprintf("At your current $%.2f monthly inflow, each additional month of cushion is within reach.", s.Savings.MonthlyInflow),
				}
			},
		},
		{
			ID:           "low-income-essentials",
			Persona:      model.PersonaLowIncomeStabilizer,
			Category:     "Financial Stability",
			Title:        "Protect your essentials first",
			Description:  "Prioritizing housing, utilities, food, and transport keeps a tight budget resilient.",
			SignalsUsed:  []string{"income"},
			Priority:     1,
			Confidence:   0.8,
			AttachOffers: true,
			Eligible: func(_ *model.User, _ *model.SignalResult) bool {
				return true
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"With about $%.2f coming in monthly, a clear picture of essential costs makes every dollar count.",
					s.Income.MonthlyEquivalent)
			},
			ActionItems: func(s *model.SignalResult) []string {
				return []string{
					"Consider listing your four essential categories and their monthly costs.",
					"Explore community and government programs you may qualify for.",
				}
			},
		},
		{
			ID:          "low-income-micro-savings",
			Persona:     model.PersonaLowIncomeStabilizer,
			Category:    "Financial Stability",
			Title:       "Start a micro-savings habit",
			Description: "Even a few dollars a week builds a buffer that softens surprises.",
			SignalsUsed: []string{"income", "savings"},
			Priority:    2,
			Confidence:  0.7,
			Eligible: func(_ *model.User, s *model.SignalResult) bool {
				return s.Savings.TotalBalance < 1000
			},
			Rationale: func(s *model.SignalResult) string {
				return fmt.Sprintf(
					"Your savings balance is $%.2f; a small weekly habit grows it steadily without straining the budget.",
					s.Savings.TotalBalance)
			},
			ActionItems: func(s *model.SignalResult) []string {
				return []string{
					"Consider an automatic $5-10 weekly transfer on payday.",
					"Celebrate each $100 milestone; momentum matters more than size.",
				}
			},
		},
	}
}

// paydownToUtilization returns the dollar amount needed to bring the
// highest-utilization card down to the target utilization.
func paydownToUtilization(credit model.CreditSignals, target float64) float64 {
	var amount float64
	for _, card := range credit.Cards {
		if card.Utilization <= target || card.CreditLimit <= 0 {
			continue
		}
		needed := card.Balance - card.CreditLimit*target
		if needed > amount {
			amount = needed
		}
	}
	return math.Max(amount, 0)
}
