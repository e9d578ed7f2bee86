// Package signal derives normalized behavioral signals from a window of a
// user's raw financial records. Extractors are pure: identical records in,
// byte-identical signal bundle out.
package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Detector computes the full signal bundle for one user and window.
type Detector struct {
	now func() time.Time
}

// NewDetector creates a signal detector.
func NewDetector() *Detector {
	return &Detector{now: time.Now}
}

// Detect turns one window of records into a signal bundle. Records are
// expected to already be scoped to the window; the window itself drives
// monthly normalization. Missing record classes produce zero-valued blocks,
// never errors.
func (d *Detector) Detect(user *model.User, accounts []model.Account, transactions []model.Transaction, liabilities []model.Liability, window model.Window) (*model.SignalResult, error) {
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("detect signals: user is required")
	}
	if !window.Valid() {
		return nil, fmt.Errorf("detect signals: invalid window %q", window)
	}

	result := &model.SignalResult{
		ComputedAt:    d.now().UTC(),
		UserID:        user.ID,
		Window:        window,
		Credit:        extractCreditSignals(accounts, liabilities),
		Subscriptions: extractSubscriptionSignals(transactions, window),
		Savings:       extractSavingsSignals(accounts, transactions, window),
		Income:        extractIncomeSignals(transactions),
	}

	return result, nil
}

// roundMoney rounds a dollar amount to 2 decimal places.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundRatio rounds a ratio to 3 decimal places.
func roundRatio(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// monthsInWindow returns the window length expressed in 30-day months.
func monthsInWindow(window model.Window) float64 {
	return float64(window.Days()) / 30.0
}

// daysBetween returns the gap between two dates in fractional days.
func daysBetween(earlier, later time.Time) float64 {
	return later.Sub(earlier).Hours() / 24
}
