package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sagebrush-labs/finsight/internal/model"
)

func paycheck(amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:        "pay-" + date.Format("2006-01-02"),
		AccountID: "check-1",
		Direction: model.DirectionCredit,
		Amount:    amount,
		Date:      date,
		Category:  []string{"Payroll"},
	}
}

func TestExtractIncomeSignals(t *testing.T) {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("single payment yields no pattern", func(t *testing.T) {
		got := extractIncomeSignals([]model.Transaction{paycheck(2000, start)})

		assert.Equal(t, model.FrequencyVariable, got.Frequency)
		assert.Equal(t, 1, got.PaymentCount)
		assert.Zero(t, got.MonthlyEquivalent)
	})

	t.Run("steady biweekly payroll", func(t *testing.T) {
		txns := []model.Transaction{
			paycheck(2000, start),
			paycheck(2000, start.AddDate(0, 0, 14)),
			paycheck(2000, start.AddDate(0, 0, 28)),
			paycheck(2000, start.AddDate(0, 0, 42)),
		}

		got := extractIncomeSignals(txns)

		assert.Equal(t, model.FrequencyBiweekly, got.Frequency)
		assert.Equal(t, 4, got.PaymentCount)
		assert.Zero(t, got.Variability)
		assert.Equal(t, 14, got.LongestGapDays)
		assert.False(t, got.HasIncomeGap)
		assert.Equal(t, 4340.0, got.MonthlyEquivalent)
		assert.Equal(t, 52080.0, got.AnnualizedIncome)
	})

	t.Run("monthly payroll", func(t *testing.T) {
		txns := []model.Transaction{
			paycheck(3000, start),
			paycheck(3000, start.AddDate(0, 0, 30)),
			paycheck(3000, start.AddDate(0, 0, 60)),
		}

		got := extractIncomeSignals(txns)

		assert.Equal(t, model.FrequencyMonthly, got.Frequency)
		assert.Equal(t, 3000.0, got.MonthlyEquivalent)
		assert.Equal(t, 36000.0, got.AnnualizedIncome)
	})

	t.Run("variability from uneven amounts", func(t *testing.T) {
		txns := []model.Transaction{
			paycheck(1000, start),
			paycheck(2000, start.AddDate(0, 0, 14)),
		}

		got := extractIncomeSignals(txns)

		// Population stddev 500 over mean 1500.
		assert.Equal(t, 0.333, got.Variability)
		assert.Equal(t, 1500.0, got.AverageAmount)
	})

	t.Run("long gap is flagged", func(t *testing.T) {
		txns := []model.Transaction{
			paycheck(1800, start),
			paycheck(1800, start.AddDate(0, 0, 14)),
			paycheck(1800, start.AddDate(0, 0, 64)),
		}

		got := extractIncomeSignals(txns)

		assert.True(t, got.HasIncomeGap)
		assert.Equal(t, 50, got.LongestGapDays)
	})

	t.Run("debits are never income", func(t *testing.T) {
		spend := paycheck(2000, start)
		spend.Direction = model.DirectionDebit
		got := extractIncomeSignals([]model.Transaction{spend, spend})

		assert.Zero(t, got.PaymentCount)
	})
}
