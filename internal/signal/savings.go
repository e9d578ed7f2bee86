package signal

import "github.com/sagebrush-labs/finsight/internal/model"

// extractSavingsSignals sizes the user's savings balances, inflow trajectory,
// and emergency-fund coverage. Zero savings accounts yields a zero block.
func extractSavingsSignals(accounts []model.Account, transactions []model.Transaction, window model.Window) model.SavingsSignals {
	savingsAccounts := make(map[string]bool)
	var signals model.SavingsSignals

	for _, account := range accounts {
		if !account.IsSavingsVehicle() {
			continue
		}
		savingsAccounts[account.ID] = true
		signals.AccountCount++
		signals.TotalBalance += account.CurrentBalance
	}
	signals.TotalBalance = roundMoney(signals.TotalBalance)

	var netInflow float64
	var nonTransferExpenses float64
	for _, txn := range transactions {
		if savingsAccounts[txn.AccountID] {
			switch txn.Direction {
			case model.DirectionCredit:
				netInflow += txn.Amount
			case model.DirectionDebit:
				netInflow -= txn.Amount
			}
		}
		if txn.Direction == model.DirectionDebit && !txn.IsTransfer() {
			nonTransferExpenses += txn.Amount
		}
	}

	months := monthsInWindow(window)
	signals.NetInflow = roundMoney(netInflow)
	signals.MonthlyInflow = roundMoney(netInflow / months)

	// Growth is measured against the balance the window started from,
	// reconstructed from current balance minus net inflow.
	estimatedStart := signals.TotalBalance - signals.NetInflow
	if estimatedStart < 0 {
		estimatedStart = 0
	}
	switch {
	case estimatedStart > 0:
		signals.GrowthRatePct = roundMoney((signals.TotalBalance - estimatedStart) / estimatedStart * 100)
	case signals.NetInflow > 0:
		// All growth came from inflow; report full growth.
		signals.GrowthRatePct = 100
	}

	if nonTransferExpenses > 0 {
		averageMonthlyExpenses := nonTransferExpenses / months
		signals.EmergencyFundMonths = roundMoney(signals.TotalBalance / averageMonthlyExpenses)
	}

	return signals
}
