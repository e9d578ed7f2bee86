package model

import "time"

// Liability holds the debt terms attached to a credit account.
type Liability struct {
	LastPaymentDate    time.Time
	NextPaymentDueDate time.Time
	ID                 string
	UserID             string
	AccountID          string
	APR                float64 // Annual percentage rate, e.g. 24.99
	MinimumPayment     float64
	LastPaymentAmount  float64
	IsOverdue          bool
}

// EstimatedMonthlyInterest returns the interest accruing in one month on the
// given balance at this liability's APR.
func (l *Liability) EstimatedMonthlyInterest(balance float64) float64 {
	return balance * (l.APR / 12 / 100)
}
