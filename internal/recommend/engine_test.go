package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// stubGenerator returns fixed educational text without any provider.
type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ string) string {
	return "You can take this one step at a time."
}

func assignment(p model.PersonaType) model.PersonaAssignment {
	return model.PersonaAssignment{
		UserID:      "user-1",
		PersonaType: p,
		Priority:    p.Priority(),
	}
}

func richSignals() *model.SignalResult {
	return &model.SignalResult{
		ComputedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UserID:     "user-1",
		Window:     model.Window180Days,
		Credit: model.CreditSignals{
			Cards:                []model.CardSignals{{AccountID: "card-1", Utilization: 0.8, Balance: 4000, CreditLimit: 5000}},
			CardCount:            1,
			HighestUtilization:   0.8,
			TotalBalance:         4000,
			TotalMonthlyInterest: 80,
		},
		Subscriptions: model.SubscriptionSignals{
			RecurringCount:        4,
			MonthlyRecurringSpend: 62.5,
			SubscriptionShare:     12,
		},
		Savings: model.SavingsSignals{
			TotalBalance:        6000,
			MonthlyInflow:       250,
			GrowthRatePct:       4,
			EmergencyFundMonths: 2.5,
		},
		Income: model.IncomeSignals{
			Frequency:         model.FrequencyBiweekly,
			PaymentCount:      12,
			Variability:       0.3,
			LongestGapDays:    21,
			MonthlyEquivalent: 3800,
			AnnualizedIncome:  45600,
		},
	}
}

func TestEngineGenerate(t *testing.T) {
	user := &model.User{ID: "user-1", Consent: model.Consent{Active: true}}
	engine := NewEngine(stubGenerator{}, nil)

	t.Run("input validation", func(t *testing.T) {
		_, err := engine.Generate(context.Background(), nil, richSignals(), nil, 5)
		require.Error(t, err)

		_, err = engine.Generate(context.Background(), user, nil, nil, 5)
		require.Error(t, err)

		_, err = engine.Generate(context.Background(), user, &model.SignalResult{UserID: "user-1"}, nil, 5)
		require.Error(t, err)
	})

	t.Run("no personas means no recommendations", func(t *testing.T) {
		got, err := engine.Generate(context.Background(), user, richSignals(), nil, 5)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("primary templates come before secondary backfill", func(t *testing.T) {
		personas := []model.PersonaAssignment{
			assignment(model.PersonaHighUtilization),
			assignment(model.PersonaSavingsBuilder),
		}

		got, err := engine.Generate(context.Background(), user, richSignals(), personas, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "high-util-paydown", got[0].TemplateID)
		assert.Equal(t, "high-util-interest-awareness", got[1].TemplateID)
		assert.Equal(t, "savings-rate-boost", got[2].TemplateID)
	})

	t.Run("backfill rounds alternate between secondaries", func(t *testing.T) {
		personas := []model.PersonaAssignment{
			assignment(model.PersonaHighUtilization),
			assignment(model.PersonaSubscriptionHeavy),
			assignment(model.PersonaSavingsBuilder),
		}

		got, err := engine.Generate(context.Background(), user, richSignals(), personas, 5)
		require.NoError(t, err)
		require.Len(t, got, 5)

		ids := make([]string, len(got))
		for i, rec := range got {
			ids[i] = rec.TemplateID
		}
		assert.Equal(t, []string{
			"high-util-paydown",
			"high-util-interest-awareness",
			"subscription-audit",
			"savings-rate-boost",
			"subscription-redirect",
		}, ids)
	})

	t.Run("templates exhaust before target without padding", func(t *testing.T) {
		personas := []model.PersonaAssignment{assignment(model.PersonaHighUtilization)}

		got, err := engine.Generate(context.Background(), user, richSignals(), personas, 10)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("rendered recommendations carry a full decision trace", func(t *testing.T) {
		personas := []model.PersonaAssignment{assignment(model.PersonaHighUtilization)}

		got, err := engine.Generate(context.Background(), user, richSignals(), personas, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)

		rec := got[0]
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "user-1", rec.UserID)
		assert.Equal(t, model.StatusPending, rec.Status)
		assert.Equal(t, model.StandardDisclaimer, rec.Disclaimer)
		assert.Equal(t, "You can take this one step at a time.", rec.EducationalContent)
		assert.NotEmpty(t, rec.Rationale)
		assert.NotEmpty(t, rec.ActionItems)
		assert.NotEmpty(t, rec.Trace.Prompt)
		assert.Contains(t, rec.Trace.Prompt, rec.Title)
		assert.Equal(t, []string{"credit"}, rec.Trace.SignalsUsed)
		assert.NotEmpty(t, rec.Offers, "paydown template attaches offers at 80% utilization")
	})

	t.Run("a panicking template is skipped, not fatal", func(t *testing.T) {
		library := []Template{
			{
				ID:      "broken",
				Persona: model.PersonaHighUtilization,
				Title:   "Broken",
				Rationale: func(_ *model.SignalResult) string {
					panic("template bug")
				},
				ActionItems: func(_ *model.SignalResult) []string { return nil },
				Priority:    1,
			},
			{
				ID:          "working",
				Persona:     model.PersonaHighUtilization,
				Title:       "Working",
				Rationale:   func(_ *model.SignalResult) string { return "A solid reason." },
				ActionItems: func(_ *model.SignalResult) []string { return []string{"Consider this step."} },
				Priority:    2,
			},
		}
		e := NewEngineWithLibrary(stubGenerator{}, library, nil)

		got, err := e.Generate(context.Background(), user, richSignals(), []model.PersonaAssignment{assignment(model.PersonaHighUtilization)}, 5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "working", got[0].TemplateID)
	})

	t.Run("empty rationale fails the template", func(t *testing.T) {
		library := []Template{{
			ID:          "silent",
			Persona:     model.PersonaHighUtilization,
			Title:       "Silent",
			Rationale:   func(_ *model.SignalResult) string { return "" },
			ActionItems: func(_ *model.SignalResult) []string { return nil },
		}}
		e := NewEngineWithLibrary(stubGenerator{}, library, nil)

		got, err := e.Generate(context.Background(), user, richSignals(), []model.PersonaAssignment{assignment(model.PersonaHighUtilization)}, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestPaydownToUtilization(t *testing.T) {
	credit := model.CreditSignals{
		Cards: []model.CardSignals{
			{Balance: 4000, CreditLimit: 5000, Utilization: 0.8},
			{Balance: 100, CreditLimit: 1000, Utilization: 0.1},
		},
	}

	// 4000 - 5000*0.3 = 2500 to reach 30% on the hot card.
	assert.InDelta(t, 2500, paydownToUtilization(credit, 0.3), 0.001)
	assert.Zero(t, paydownToUtilization(model.CreditSignals{}, 0.3))
}
