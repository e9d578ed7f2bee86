package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagebrush-labs/finsight/internal/model"
)

func baseResult(window model.Window) *model.SignalResult {
	return &model.SignalResult{
		UserID: "user-1",
		Window: window,
		Income: model.IncomeSignals{
			Frequency:         model.FrequencyBiweekly,
			PaymentCount:      12,
			MonthlyEquivalent: 4340,
			AnnualizedIncome:  52080,
		},
	}
}

func TestAssign(t *testing.T) {
	c := NewClassifier(nil)

	t.Run("input validation", func(t *testing.T) {
		_, err := c.Assign("", baseResult(model.Window180Days))
		require.Error(t, err)

		_, err = c.Assign("user-1", nil)
		require.Error(t, err)

		_, err = c.Assign("user-1", &model.SignalResult{UserID: "user-1"})
		require.Error(t, err)
	})

	t.Run("no matches is a valid outcome", func(t *testing.T) {
		got, err := c.Assign("user-1", baseResult(model.Window180Days))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("high utilization from one elevated card", func(t *testing.T) {
		r := baseResult(model.Window180Days)
		r.Credit = model.CreditSignals{
			Cards:              []model.CardSignals{{AccountID: "card-1", Utilization: 0.75}},
			CardCount:          1,
			HighestUtilization: 0.75,
		}

		got, err := c.Assign("user-1", r)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaHighUtilization, got[0].PersonaType)
		assert.Equal(t, 1, got[0].Priority)
		assert.Contains(t, got[0].MatchedCriteria, "utilization>=0.70")
		assert.NotEmpty(t, got[0].Rationale)
	})

	t.Run("minimum payments alone need costly interest", func(t *testing.T) {
		r := baseResult(model.Window180Days)
		r.Credit = model.CreditSignals{
			Cards:                []model.CardSignals{{AccountID: "card-1", Utilization: 0.2, MinimumPaymentOnly: true}},
			CardCount:            1,
			HighestUtilization:   0.2,
			MinimumPaymentOnly:   true,
			TotalMonthlyInterest: 30,
		}

		got, err := c.Assign("user-1", r)
		require.NoError(t, err)
		assert.Empty(t, got)

		r.Credit.TotalMonthlyInterest = 80
		got, err = c.Assign("user-1", r)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaHighUtilization, got[0].PersonaType)
	})

	t.Run("variable income from gap or variability", func(t *testing.T) {
		r := baseResult(model.Window180Days)
		r.Income.Variability = 0.3

		got, err := c.Assign("user-1", r)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaVariableIncome, got[0].PersonaType)

		r.Income.Variability = 0.1
		r.Income.HasIncomeGap = true
		r.Income.LongestGapDays = 52
		got, err = c.Assign("user-1", r)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Contains(t, got[0].MatchedCriteria, "income-gap>45d")
	})

	t.Run("subscription dollar threshold only applies on the short window", func(t *testing.T) {
		subs := model.SubscriptionSignals{
			RecurringCount:        3,
			MonthlyRecurringSpend: 60,
			SubscriptionShare:     5,
		}

		short := baseResult(model.Window30Days)
		short.Subscriptions = subs
		got, err := c.Assign("user-1", short)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaSubscriptionHeavy, got[0].PersonaType)

		long := baseResult(model.Window180Days)
		long.Subscriptions = subs
		got, err = c.Assign("user-1", long)
		require.NoError(t, err)
		assert.Empty(t, got)

		long.Subscriptions.SubscriptionShare = 12
		got, err = c.Assign("user-1", long)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaSubscriptionHeavy, got[0].PersonaType)
	})

	t.Run("savings builder requires every card under the ceiling", func(t *testing.T) {
		r := baseResult(model.Window180Days)
		r.Savings = model.SavingsSignals{TotalBalance: 6000, GrowthRatePct: 4, MonthlyInflow: 250}
		r.Credit = model.CreditSignals{
			Cards:              []model.CardSignals{{Utilization: 0.1}, {Utilization: 0.45}},
			CardCount:          2,
			HighestUtilization: 0.45,
		}

		got, err := c.Assign("user-1", r)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("savings builder matches vacuously with zero cards", func(t *testing.T) {
		r := baseResult(model.Window180Days)
		r.Savings = model.SavingsSignals{TotalBalance: 6000}

		got, err := c.Assign("user-1", r)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaSavingsBuilder, got[0].PersonaType)
		assert.Contains(t, got[0].MatchedCriteria, "all-cards-utilization<0.40")
	})

	t.Run("zero income matches the stabilizer literally", func(t *testing.T) {
		r := baseResult(model.Window180Days)
		r.Income = model.IncomeSignals{Frequency: model.FrequencyVariable}

		got, err := c.Assign("user-1", r)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.PersonaLowIncomeStabilizer, got[0].PersonaType)
	})

	t.Run("assignments sort by priority with primary first", func(t *testing.T) {
		r := baseResult(model.Window180Days)
		r.Income = model.IncomeSignals{
			Frequency:         model.FrequencyMonthly,
			MonthlyEquivalent: 2000,
			AnnualizedIncome:  24000,
			Variability:       0.3,
		}
		r.Credit = model.CreditSignals{
			Cards:              []model.CardSignals{{Utilization: 0.8}},
			CardCount:          1,
			HighestUtilization: 0.8,
		}

		got, err := c.Assign("user-1", r)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, model.PersonaHighUtilization, got[0].PersonaType)
		assert.Equal(t, model.PersonaVariableIncome, got[1].PersonaType)
		assert.Equal(t, model.PersonaLowIncomeStabilizer, got[2].PersonaType)

		primary, ok := Primary(got)
		assert.True(t, ok)
		assert.Equal(t, model.PersonaHighUtilization, primary)
	})

	t.Run("primary of empty assignments", func(t *testing.T) {
		_, ok := Primary(nil)
		assert.False(t, ok)
	})
}
