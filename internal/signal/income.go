package signal

import (
	"math"
	"sort"

	"github.com/sagebrush-labs/finsight/internal/model"
)

const (
	// incomeGapThresholdDays is the longest tolerable stretch without income.
	incomeGapThresholdDays = 45.0
	// biweeksPerMonth converts biweekly payments to a monthly equivalent.
	biweeksPerMonth = 2.17
)

// extractIncomeSignals classifies payroll regularity from credit transactions
// categorized as income. Fewer than two payments yields a zero block with
// variable frequency: no pattern can be inferred from a single deposit.
func extractIncomeSignals(transactions []model.Transaction) model.IncomeSignals {
	var payments []model.Transaction
	for _, txn := range transactions {
		if txn.IsIncome() {
			payments = append(payments, txn)
		}
	}

	signals := model.IncomeSignals{Frequency: model.FrequencyVariable}
	signals.PaymentCount = len(payments)
	if len(payments) < 2 {
		return signals
	}

	sort.Slice(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })

	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	mean := sum / float64(len(payments))
	signals.AverageAmount = roundMoney(mean)

	var variance float64
	for _, p := range payments {
		variance += (p.Amount - mean) * (p.Amount - mean)
	}
	variance /= float64(len(payments))
	if mean > 0 {
		signals.Variability = roundRatio(math.Sqrt(variance) / mean)
	}

	gaps := make([]float64, 0, len(payments)-1)
	var longestGap float64
	for i := 1; i < len(payments); i++ {
		gap := daysBetween(payments[i-1].Date, payments[i].Date)
		gaps = append(gaps, gap)
		if gap > longestGap {
			longestGap = gap
		}
	}

	signals.LongestGapDays = int(math.Round(longestGap))
	signals.HasIncomeGap = longestGap > incomeGapThresholdDays
	signals.Frequency = frequencyFromGap(medianGap(gaps))

	factor := 1.0
	switch signals.Frequency {
	case model.FrequencyWeekly:
		factor = weeksPerMonth
	case model.FrequencyBiweekly:
		factor = biweeksPerMonth
	}
	signals.MonthlyEquivalent = roundMoney(mean * factor)
	signals.AnnualizedIncome = roundMoney(signals.MonthlyEquivalent * 12)

	return signals
}

// medianGap returns the median of the payment gaps.
func medianGap(gaps []float64) float64 {
	if len(gaps) == 0 {
		return 0
	}
	sorted := make([]float64, len(gaps))
	copy(sorted, gaps)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// frequencyFromGap maps the median payment gap to a payroll frequency.
func frequencyFromGap(gap float64) model.IncomeFrequency {
	switch {
	case gap >= 5 && gap <= 10:
		return model.FrequencyWeekly
	case gap >= 12 && gap <= 16:
		return model.FrequencyBiweekly
	case gap >= 25 && gap <= 35:
		return model.FrequencyMonthly
	default:
		return model.FrequencyVariable
	}
}
