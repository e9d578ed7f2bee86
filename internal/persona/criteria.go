// Package persona evaluates rule-based criteria against a signal bundle and
// assigns priority-ordered behavioral personas.
package persona

import (
	"fmt"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Classification thresholds.
const (
	highUtilizationThreshold    = 0.70
	costlyMonthlyInterest       = 50.0
	incomeVariabilityThreshold  = 0.25
	minRecurringMerchants       = 3
	recurringSpendThreshold     = 50.0
	subscriptionShareThreshold  = 10.0
	savingsBalanceThreshold     = 5000.0
	savingsGrowthThresholdPct   = 2.0
	savingsMonthlyInflowTarget  = 200.0
	saverMaxUtilization         = 0.40
	lowAnnualIncomeThreshold    = 30000.0
	lowMonthlyIncomeThreshold   = 2500.0
)

// criterion pairs a persona with its pure matching predicate. match returns
// whether the bundle qualifies, plus the audit labels and rationale that
// justify the assignment.
type criterion struct {
	persona model.PersonaType
	match   func(r *model.SignalResult) (bool, []string, string)
}

// criteria is the fixed, priority-ordered rule table. Criteria are
// non-exclusive: every matching persona is assigned.
var criteria = []criterion{
	{persona: model.PersonaHighUtilization, match: matchHighUtilization},
	{persona: model.PersonaVariableIncome, match: matchVariableIncome},
	{persona: model.PersonaSubscriptionHeavy, match: matchSubscriptionHeavy},
	{persona: model.PersonaSavingsBuilder, match: matchSavingsBuilder},
	{persona: model.PersonaLowIncomeStabilizer, match: matchLowIncomeStabilizer},
}

func matchHighUtilization(r *model.SignalResult) (bool, []string, string) {
	credit := r.Credit
	if credit.CardCount == 0 {
		return false, nil, ""
	}

	var labels []string
	if credit.HighestUtilization >= highUtilizationThreshold {
		labels = append(labels, fmt.Sprintf("utilization>=%.2f", highUtilizationThreshold))
	}
	if credit.MinimumPaymentOnly && credit.TotalMonthlyInterest > costlyMonthlyInterest {
		labels = append(labels, "minimum-payments-with-costly-interest")
	}
	if credit.AnyOverdue {
		labels = append(labels, "overdue-account")
	}
	if len(labels) == 0 {
		return false, nil, ""
	}

	rationale := fmt.Sprintf(
		"Credit utilization is elevated: highest card at %.0f%% across %d card(s), with an estimated $%.2f/month in interest.",
		credit.HighestUtilization*100, credit.CardCount, credit.TotalMonthlyInterest)
	return true, labels, rationale
}

func matchVariableIncome(r *model.SignalResult) (bool, []string, string) {
	income := r.Income

	var labels []string
	if income.Variability > incomeVariabilityThreshold {
		labels = append(labels, fmt.Sprintf("income-variability>%.2f", incomeVariabilityThreshold))
	}
	if income.HasIncomeGap {
		labels = append(labels, "income-gap>45d")
	}
	if len(labels) == 0 {
		return false, nil, ""
	}

	rationale := fmt.Sprintf(
		"Income is irregular: payment variability of %.3f with a longest gap of %d days between deposits.",
		income.Variability, income.LongestGapDays)
	return true, labels, rationale
}

func matchSubscriptionHeavy(r *model.SignalResult) (bool, []string, string) {
	subs := r.Subscriptions
	if subs.RecurringCount < minRecurringMerchants {
		return false, nil, ""
	}

	var labels []string
	// The dollar threshold is only meaningful on the short window; on 180d
	// the share of total spend is the deciding measure.
	if r.Window == model.Window30Days && subs.MonthlyRecurringSpend >= recurringSpendThreshold {
		labels = append(labels, fmt.Sprintf("recurring-spend>=$%.0f", recurringSpendThreshold))
	}
	if subs.SubscriptionShare >= subscriptionShareThreshold {
		labels = append(labels, fmt.Sprintf("subscription-share>=%.0f%%", subscriptionShareThreshold))
	}
	if len(labels) == 0 {
		return false, nil, ""
	}

	labels = append([]string{fmt.Sprintf("recurring-merchants>=%d", minRecurringMerchants)}, labels...)
	rationale := fmt.Sprintf(
		"Subscriptions are a heavy load: %d recurring merchants totaling $%.2f/month (%.1f%% of spending).",
		subs.RecurringCount, subs.MonthlyRecurringSpend, subs.SubscriptionShare)
	return true, labels, rationale
}

func matchSavingsBuilder(r *model.SignalResult) (bool, []string, string) {
	savings := r.Savings

	// Building savings only counts while credit stays in check: every card
	// must sit below the utilization ceiling. No cards passes vacuously.
	for _, card := range r.Credit.Cards {
		if card.Utilization >= saverMaxUtilization {
			return false, nil, ""
		}
	}

	var labels []string
	if savings.TotalBalance > savingsBalanceThreshold {
		labels = append(labels, fmt.Sprintf("savings-balance>$%.0f", savingsBalanceThreshold))
	}
	if savings.GrowthRatePct >= savingsGrowthThresholdPct {
		labels = append(labels, fmt.Sprintf("growth>=%.0f%%", savingsGrowthThresholdPct))
	}
	if savings.MonthlyInflow >= savingsMonthlyInflowTarget {
		labels = append(labels, fmt.Sprintf("monthly-inflow>=$%.0f", savingsMonthlyInflowTarget))
	}
	if len(labels) == 0 {
		return false, nil, ""
	}

	labels = append(labels, fmt.Sprintf("all-cards-utilization<%.2f", saverMaxUtilization))
	rationale := fmt.Sprintf(
		"Savings momentum is positive: $%.2f saved with %.1f%% growth and $%.2f/month flowing in.",
		savings.TotalBalance, savings.GrowthRatePct, savings.MonthlyInflow)
	return true, labels, rationale
}

func matchLowIncomeStabilizer(r *model.SignalResult) (bool, []string, string) {
	income := r.Income

	var labels []string
	if income.AnnualizedIncome < lowAnnualIncomeThreshold {
		labels = append(labels, fmt.Sprintf("annual-income<$%.0f", lowAnnualIncomeThreshold))
	}
	if income.MonthlyEquivalent < lowMonthlyIncomeThreshold {
		labels = append(labels, fmt.Sprintf("monthly-income<$%.0f", lowMonthlyIncomeThreshold))
	}
	if len(labels) == 0 {
		return false, nil, ""
	}

	rationale := fmt.Sprintf(
		"Income is constrained: roughly $%.2f/month ($%.2f annualized), where every dollar of stability helps.",
		income.MonthlyEquivalent, income.AnnualizedIncome)
	return true, labels, rationale
}
