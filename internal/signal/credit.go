package signal

import "github.com/sagebrush-labs/finsight/internal/model"

// minimumPaymentTolerance is how far above the minimum payment the last
// payment may land while still counting as minimum-payment-only behavior.
const minimumPaymentTolerance = 0.10

// extractCreditSignals computes per-card and aggregate credit metrics for
// every credit-card account that has a matching liability. Zero cards yields
// an all-zero block.
func extractCreditSignals(accounts []model.Account, liabilities []model.Liability) model.CreditSignals {
	liabilityByAccount := make(map[string]model.Liability, len(liabilities))
	for _, l := range liabilities {
		liabilityByAccount[l.AccountID] = l
	}

	var signals model.CreditSignals

	for _, account := range accounts {
		if !account.IsCreditCard() {
			continue
		}
		liability, ok := liabilityByAccount[account.ID]
		if !ok {
			continue
		}

		card := model.CardSignals{
			AccountID:       account.ID,
			Balance:         roundMoney(account.CurrentBalance),
			CreditLimit:     roundMoney(account.CreditLimit),
			MonthlyInterest: roundMoney(liability.EstimatedMonthlyInterest(account.CurrentBalance)),
			IsOverdue:       liability.IsOverdue,
		}

		if account.CreditLimit > 0 {
			card.Utilization = roundRatio(account.CurrentBalance / account.CreditLimit)
		}

		if liability.MinimumPayment > 0 && liability.LastPaymentAmount > 0 &&
			liability.LastPaymentAmount <= liability.MinimumPayment*(1+minimumPaymentTolerance) {
			card.MinimumPaymentOnly = true
		}

		signals.Cards = append(signals.Cards, card)
		signals.TotalBalance += card.Balance
		signals.TotalMonthlyInterest += card.MonthlyInterest
		if card.Utilization > signals.HighestUtilization {
			signals.HighestUtilization = card.Utilization
		}
		if card.MinimumPaymentOnly {
			signals.MinimumPaymentOnly = true
		}
		if card.IsOverdue {
			signals.AnyOverdue = true
		}
	}

	signals.CardCount = len(signals.Cards)
	if signals.CardCount > 0 {
		var sum float64
		for _, card := range signals.Cards {
			sum += card.Utilization
		}
		signals.AverageUtilization = roundRatio(sum / float64(signals.CardCount))
	}
	signals.TotalBalance = roundMoney(signals.TotalBalance)
	signals.TotalMonthlyInterest = roundMoney(signals.TotalMonthlyInterest)

	return signals
}
