package signal

import (
	"sort"

	"github.com/sagebrush-labs/finsight/internal/model"
)

const (
	// minRecurringOccurrences is how many in-window charges a merchant needs
	// before it can count as recurring.
	minRecurringOccurrences = 3
	// gapToleranceDays is the allowed deviation of each gap from the mean gap.
	gapToleranceDays = 5.0
	// weeksPerMonth converts weekly cadence amounts to monthly spend.
	weeksPerMonth = 4.33
)

// extractSubscriptionSignals finds recurring merchants among debit
// transactions and sizes the user's subscription load.
func extractSubscriptionSignals(transactions []model.Transaction, window model.Window) model.SubscriptionSignals {
	byMerchant := make(map[string][]model.Transaction)
	var totalDebitSpend float64

	for _, txn := range transactions {
		if txn.Direction != model.DirectionDebit {
			continue
		}
		totalDebitSpend += txn.Amount
		merchant := txn.MerchantName
		if merchant == "" {
			merchant = txn.Name
		}
		if merchant == "" {
			continue
		}
		byMerchant[merchant] = append(byMerchant[merchant], txn)
	}

	var signals model.SubscriptionSignals

	merchants := make([]string, 0, len(byMerchant))
	for name := range byMerchant {
		merchants = append(merchants, name)
	}
	sort.Strings(merchants)

	for _, name := range merchants {
		recurring, ok := detectRecurring(name, byMerchant[name])
		if !ok {
			continue
		}
		signals.RecurringMerchants = append(signals.RecurringMerchants, recurring)

		monthly := recurring.AverageAmount
		if recurring.Cadence == model.CadenceWeekly {
			monthly *= weeksPerMonth
		}
		signals.MonthlyRecurringSpend += monthly
	}

	signals.RecurringCount = len(signals.RecurringMerchants)
	signals.MonthlyRecurringSpend = roundMoney(signals.MonthlyRecurringSpend)

	if totalDebitSpend > 0 {
		windowSpend := signals.MonthlyRecurringSpend * monthsInWindow(window)
		signals.SubscriptionShare = roundMoney(windowSpend / totalDebitSpend * 100)
	}

	return signals
}

// detectRecurring decides whether one merchant's charges form a recurring
// pattern: at least three occurrences, every gap within tolerance of the
// mean gap.
func detectRecurring(name string, txns []model.Transaction) (model.RecurringMerchant, bool) {
	if len(txns) < minRecurringOccurrences {
		return model.RecurringMerchant{}, false
	}

	sort.Slice(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })

	gaps := make([]float64, 0, len(txns)-1)
	for i := 1; i < len(txns); i++ {
		gaps = append(gaps, daysBetween(txns[i-1].Date, txns[i].Date))
	}

	var gapSum float64
	for _, g := range gaps {
		gapSum += g
	}
	meanGap := gapSum / float64(len(gaps))

	for _, g := range gaps {
		if g < meanGap-gapToleranceDays || g > meanGap+gapToleranceDays {
			return model.RecurringMerchant{}, false
		}
	}

	var amountSum float64
	for _, txn := range txns {
		amountSum += txn.Amount
	}

	return model.RecurringMerchant{
		Name:          name,
		Cadence:       cadenceFromGap(meanGap),
		Occurrences:   len(txns),
		AverageAmount: roundMoney(amountSum / float64(len(txns))),
		MeanGapDays:   roundRatio(meanGap),
	}, true
}

// cadenceFromGap maps a mean gap to a billing cadence. Gaps outside both
// bands default to monthly.
func cadenceFromGap(meanGap float64) model.SubscriptionCadence {
	switch {
	case meanGap >= 5 && meanGap <= 10:
		return model.CadenceWeekly
	case meanGap >= 20 && meanGap <= 35:
		return model.CadenceMonthly
	default:
		return model.CadenceMonthly
	}
}
