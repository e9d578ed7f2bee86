package model

import (
	"fmt"
	"time"
)

// Window is the lookback period over which signals are computed.
type Window string

// Supported signal windows.
const (
	Window30Days  Window = "30d"
	Window180Days Window = "180d"
)

// ParseWindow validates a window string.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window30Days, Window180Days:
		return Window(s), nil
	default:
		return "", fmt.Errorf("invalid window %q: must be 30d or 180d", s)
	}
}

// Days returns the number of days the window spans.
func (w Window) Days() int {
	switch w {
	case Window30Days:
		return 30
	case Window180Days:
		return 180
	default:
		return 0
	}
}

// Valid reports whether the window is one of the supported periods.
func (w Window) Valid() bool {
	return w == Window30Days || w == Window180Days
}

// SignalResult is the full derived signal bundle for one user and window.
// It is a pure function of the raw records and is recomputed, never merged.
type SignalResult struct {
	ComputedAt    time.Time
	UserID        string
	Window        Window
	Credit        CreditSignals
	Subscriptions SubscriptionSignals
	Savings       SavingsSignals
	Income        IncomeSignals
}

// CardSignals holds per-card credit metrics.
type CardSignals struct {
	AccountID          string
	Utilization        float64
	Balance            float64
	CreditLimit        float64
	MonthlyInterest    float64
	MinimumPaymentOnly bool
	IsOverdue          bool
}

// CreditSignals summarizes credit-card behavior across all cards.
type CreditSignals struct {
	Cards              []CardSignals
	CardCount          int
	AverageUtilization float64
	HighestUtilization float64
	TotalBalance       float64
	TotalMonthlyInterest float64
	MinimumPaymentOnly bool
	AnyOverdue         bool
}

// SubscriptionCadence describes how often a recurring merchant charges.
type SubscriptionCadence string

// Cadence constants.
const (
	CadenceWeekly  SubscriptionCadence = "weekly"
	CadenceMonthly SubscriptionCadence = "monthly"
)

// RecurringMerchant is a merchant with regularly spaced debit charges.
type RecurringMerchant struct {
	Name          string
	Cadence       SubscriptionCadence
	Occurrences   int
	AverageAmount float64
	MeanGapDays   float64
}

// SubscriptionSignals summarizes recurring-spend behavior.
type SubscriptionSignals struct {
	RecurringMerchants    []RecurringMerchant
	RecurringCount        int
	MonthlyRecurringSpend float64
	SubscriptionShare     float64 // Percent of total debit spend
}

// SavingsSignals summarizes savings balances and trajectory.
type SavingsSignals struct {
	AccountCount        int
	TotalBalance        float64
	NetInflow           float64
	MonthlyInflow       float64 // NetInflow normalized to one month
	GrowthRatePct       float64
	EmergencyFundMonths float64
}

// IncomeFrequency classifies the spacing of income deposits.
type IncomeFrequency string

// Income frequency constants.
const (
	FrequencyWeekly   IncomeFrequency = "weekly"
	FrequencyBiweekly IncomeFrequency = "biweekly"
	FrequencyMonthly  IncomeFrequency = "monthly"
	FrequencyVariable IncomeFrequency = "variable"
)

// IncomeSignals summarizes income stability.
type IncomeSignals struct {
	Frequency         IncomeFrequency
	PaymentCount      int
	AverageAmount     float64
	Variability       float64 // stddev / mean of payment amounts
	LongestGapDays    int
	HasIncomeGap      bool
	MonthlyEquivalent float64
	AnnualizedIncome  float64
}

// Validate fails fast on a malformed signal result, e.g. one produced without
// a window. Malformed bundles must not flow into classification.
func (r *SignalResult) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("signal result missing user ID")
	}
	if !r.Window.Valid() {
		return fmt.Errorf("signal result for user %s has invalid window %q", r.UserID, r.Window)
	}
	return nil
}
