package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagebrush-labs/finsight/internal/model"
)

func TestMatchOffers(t *testing.T) {
	t.Run("nil signals match nothing", func(t *testing.T) {
		assert.Nil(t, MatchOffers(model.PersonaHighUtilization, nil))
	})

	t.Run("balance transfer needs real utilization", func(t *testing.T) {
		signals := &model.SignalResult{
			UserID: "user-1",
			Window: model.Window180Days,
			Credit: model.CreditSignals{HighestUtilization: 0.6},
		}

		got := MatchOffers(model.PersonaHighUtilization, signals)
		require.Len(t, got, 1)
		assert.Equal(t, "offer-balance-transfer", got[0].ID)
		assert.Equal(t, model.ProductBalanceTransferCard, got[0].ProductType)

		signals.Credit.HighestUtilization = 0.4
		assert.Empty(t, MatchOffers(model.PersonaHighUtilization, signals))
	})

	t.Run("overdue adds credit counseling", func(t *testing.T) {
		signals := &model.SignalResult{
			UserID: "user-1",
			Window: model.Window180Days,
			Credit: model.CreditSignals{HighestUtilization: 0.8, AnyOverdue: true},
		}

		got := MatchOffers(model.PersonaHighUtilization, signals)
		require.Len(t, got, 2)
		assert.Equal(t, "offer-balance-transfer", got[0].ID)
		assert.Equal(t, "offer-credit-counseling", got[1].ID)
	})

	t.Run("persona scoped offers", func(t *testing.T) {
		signals := &model.SignalResult{
			UserID:        "user-1",
			Window:        model.Window180Days,
			Subscriptions: model.SubscriptionSignals{RecurringCount: 4},
		}

		got := MatchOffers(model.PersonaSubscriptionHeavy, signals)
		require.Len(t, got, 1)
		assert.Equal(t, model.ProductSubscriptionManager, got[0].ProductType)

		got = MatchOffers(model.PersonaSavingsBuilder, signals)
		require.Len(t, got, 1)
		assert.Equal(t, model.ProductHighYieldSavings, got[0].ProductType)
	})

	t.Run("no excluded products in the catalog", func(t *testing.T) {
		excluded := map[model.OfferProductType]bool{
			model.ProductPaydayLoan:              true,
			model.ProductTitleLoan:               true,
			model.ProductPredatoryLender:         true,
			model.ProductHighInterestInstallment: true,
		}
		for _, rule := range offerRules {
			assert.False(t, excluded[rule.offer.ProductType],
				"offer %s carries an excluded product type", rule.offer.ID)
		}
	})
}

func TestMatchArticles(t *testing.T) {
	t.Run("nil signals match nothing", func(t *testing.T) {
		assert.Nil(t, MatchArticles(model.PersonaHighUtilization, nil))
	})

	t.Run("scores stack on the base and sort descending", func(t *testing.T) {
		signals := &model.SignalResult{
			UserID: "user-1",
			Window: model.Window180Days,
			Credit: model.CreditSignals{
				CardCount:          2,
				HighestUtilization: 0.6,
				MinimumPaymentOnly: true,
			},
		}

		got := MatchArticles(model.PersonaHighUtilization, signals)
		require.Len(t, got, 2)

		assert.Equal(t, "article-utilization-payoff", got[0].Article.ID)
		assert.InDelta(t, 0.85, got[0].Score, 0.0001)
		assert.Equal(t, "article-avalanche-snowball", got[1].Article.ID)
		assert.InDelta(t, 0.65, got[1].Score, 0.0001)
	})

	t.Run("persona mismatch scores zero and is excluded", func(t *testing.T) {
		signals := &model.SignalResult{
			UserID: "user-1",
			Window: model.Window180Days,
			Credit: model.CreditSignals{HighestUtilization: 0.9},
		}

		got := MatchArticles(model.PersonaSubscriptionHeavy, signals)
		for _, match := range got {
			assert.NotEqual(t, "article-utilization-payoff", match.Article.ID)
		}
	})

	t.Run("shared article shows up for both personas", func(t *testing.T) {
		signals := &model.SignalResult{
			UserID: "user-1",
			Window: model.Window180Days,
			Income: model.IncomeSignals{Variability: 0.4},
		}

		variable := MatchArticles(model.PersonaVariableIncome, signals)
		stabilizer := MatchArticles(model.PersonaLowIncomeStabilizer, signals)

		assert.True(t, containsArticle(variable, "article-irregular-income-budget"))
		assert.True(t, containsArticle(stabilizer, "article-irregular-income-budget"))
	})

	t.Run("deterministic ordering", func(t *testing.T) {
		signals := &model.SignalResult{
			UserID:  "user-1",
			Window:  model.Window180Days,
			Savings: model.SavingsSignals{TotalBalance: 8000, GrowthRatePct: 3, MonthlyInflow: 300},
		}

		first := MatchArticles(model.PersonaSavingsBuilder, signals)
		second := MatchArticles(model.PersonaSavingsBuilder, signals)
		assert.Equal(t, first, second)
	})
}

func containsArticle(matches []model.ArticleMatch, id string) bool {
	for _, m := range matches {
		if m.Article.ID == id {
			return true
		}
	}
	return false
}
