package guardrail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagebrush-labs/finsight/internal/model"
)

func consentedUser() *model.User {
	return &model.User{
		ID:      "user-1",
		Consent: model.Consent{UserID: "user-1", Active: true, GrantedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func cleanSignals() *model.SignalResult {
	return &model.SignalResult{
		UserID: "user-1",
		Window: model.Window180Days,
		Income: model.IncomeSignals{AnnualizedIncome: 45000},
	}
}

func cleanRecommendation() *model.Recommendation {
	return &model.Recommendation{
		ID:                 "rec-1",
		UserID:             "user-1",
		Title:              "Audit your subscriptions",
		Description:        "A quick review is an opportunity to find easy savings.",
		Rationale:          "You have several recurring charges each month.",
		EducationalContent: "Consider reviewing each charge once a quarter.",
		Disclaimer:         model.StandardDisclaimer,
		Status:             model.StatusPending,
	}
}

func TestApplyValidation(t *testing.T) {
	p := NewPipeline(nil)

	_, err := p.Apply(nil, consentedUser(), cleanSignals())
	require.Error(t, err)

	_, err = p.Apply(cleanRecommendation(), nil, cleanSignals())
	require.Error(t, err)

	_, err = p.Apply(cleanRecommendation(), consentedUser(), nil)
	require.Error(t, err)
}

func TestApplyAllChecksPass(t *testing.T) {
	p := NewPipeline(nil)

	outcome, err := p.Apply(cleanRecommendation(), consentedUser(), cleanSignals())
	require.NoError(t, err)

	assert.True(t, outcome.Passed)
	require.Len(t, outcome.Results, 5)
	names := make([]string, len(outcome.Results))
	for i, r := range outcome.Results {
		names[i] = r.Name
		assert.True(t, r.Passed, "check %s", r.Name)
		assert.NotEmpty(t, r.Reason)
	}
	assert.Equal(t, []string{CheckConsent, CheckEligibility, CheckTone, CheckDisclaimer, CheckOfferFilter}, names)
}

func TestApplyConsentShortCircuits(t *testing.T) {
	p := NewPipeline(nil)
	user := consentedUser()
	user.Consent.Active = false

	outcome, err := p.Apply(cleanRecommendation(), user, cleanSignals())
	require.NoError(t, err)

	assert.False(t, outcome.Passed)
	require.Len(t, outcome.Results, 1, "no further checks run without consent")
	assert.Equal(t, CheckConsent, outcome.Results[0].Name)
	assert.False(t, outcome.Results[0].Passed)
}

func TestApplyIsIdempotent(t *testing.T) {
	p := NewPipeline(nil)
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	rec := cleanRecommendation()
	first, err := p.Apply(rec, consentedUser(), cleanSignals())
	require.NoError(t, err)
	second, err := p.Apply(rec, consentedUser(), cleanSignals())
	require.NoError(t, err)

	assert.Equal(t, first.Passed, second.Passed)
	assert.Equal(t, first.Results, second.Results)
	assert.Len(t, rec.Trace.GuardrailResults, 5, "trace is replaced, never appended")
}

func TestCheckTone(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(rec *model.Recommendation)
		passed  bool
	}{
		{
			name:   "supportive text passes",
			mutate: func(_ *model.Recommendation) {},
			passed: true,
		},
		{
			name: "prohibited phrase fails",
			mutate: func(rec *model.Recommendation) {
				rec.Description = "You have been irresponsible with your cards."
			},
			passed: false,
		},
		{
			name: "three musts read as prescriptive",
			mutate: func(rec *model.Recommendation) {
				rec.Description = "You must budget. You must save. You must stop."
			},
			passed: false,
		},
		{
			name: "two musts are tolerated",
			mutate: func(rec *model.Recommendation) {
				rec.Description = "You must review statements, and you must know your APR. Consider both an opportunity."
			},
			passed: true,
		},
		{
			name: "mustard does not count as must",
			mutate: func(rec *model.Recommendation) {
				rec.Description = "Mustard mustered mustangs. Consider your options."
			},
			passed: true,
		},
		{
			name: "no empowering language fails",
			mutate: func(rec *model.Recommendation) {
				rec.Title = "Subscriptions"
				rec.Description = "A review of recurring charges."
				rec.Rationale = "Several recurring charges exist."
				rec.EducationalContent = "Review each charge quarterly."
			},
			passed: false,
		},
	}

	p := NewPipeline(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := cleanRecommendation()
			tt.mutate(rec)

			outcome, err := p.Apply(rec, consentedUser(), cleanSignals())
			require.NoError(t, err)

			toneResult := outcome.Results[2]
			assert.Equal(t, CheckTone, toneResult.Name)
			assert.Equal(t, tt.passed, toneResult.Passed)
		})
	}
}

func TestCheckDisclaimer(t *testing.T) {
	p := NewPipeline(nil)

	t.Run("missing disclaimer is injected", func(t *testing.T) {
		rec := cleanRecommendation()
		rec.Disclaimer = ""

		outcome, err := p.Apply(rec, consentedUser(), cleanSignals())
		require.NoError(t, err)

		assert.True(t, outcome.Passed)
		assert.Equal(t, model.StandardDisclaimer, rec.Disclaimer)
	})

	t.Run("modified disclaimer fails", func(t *testing.T) {
		rec := cleanRecommendation()
		rec.Disclaimer = "This is definitely financial advice."

		outcome, err := p.Apply(rec, consentedUser(), cleanSignals())
		require.NoError(t, err)

		assert.False(t, outcome.Passed)
		assert.False(t, outcome.Results[3].Passed)
	})
}

func TestEligibilityAndOfferFilter(t *testing.T) {
	p := NewPipeline(nil)

	t.Run("excluded product fails eligibility and is stripped", func(t *testing.T) {
		rec := cleanRecommendation()
		rec.Offers = []model.PartnerOffer{
			{ID: "bad-offer", ProductType: model.ProductPaydayLoan},
			{ID: "good-offer", ProductType: model.ProductBudgetingApp},
		}

		outcome, err := p.Apply(rec, consentedUser(), cleanSignals())
		require.NoError(t, err)

		assert.False(t, outcome.Passed)
		assert.False(t, outcome.Results[1].Passed)
		// The filter still runs and strips the excluded offer.
		require.Len(t, rec.Offers, 1)
		assert.Equal(t, "good-offer", rec.Offers[0].ID)
		assert.True(t, outcome.Results[4].Passed)
	})

	t.Run("balance transfer needs sufficient income", func(t *testing.T) {
		rec := cleanRecommendation()
		rec.Offers = []model.PartnerOffer{{ID: "bt", ProductType: model.ProductBalanceTransferCard}}
		signals := cleanSignals()
		signals.Income.AnnualizedIncome = 20000

		outcome, err := p.Apply(rec, consentedUser(), signals)
		require.NoError(t, err)

		assert.False(t, outcome.Passed)
		assert.False(t, outcome.Results[1].Passed)
		// Non-excluded offers survive the filter even when ineligible here.
		assert.Len(t, rec.Offers, 1)
	})

	t.Run("savings optimization is capped", func(t *testing.T) {
		rec := cleanRecommendation()
		rec.Category = "Savings Optimization"
		signals := cleanSignals()
		signals.Savings.TotalBalance = 60000

		outcome, err := p.Apply(rec, consentedUser(), signals)
		require.NoError(t, err)

		assert.False(t, outcome.Passed)
		assert.False(t, outcome.Results[1].Passed)
	})
}
