package catalog

import (
	"sort"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Article relevance scoring weights.
const (
	personaBaseScore     = 0.5
	signalConditionScore = 0.15
	strongConditionScore = 0.2
	maxArticleScore      = 1.0
)

// articleRule pairs a catalog article with the signal conditions that boost
// its relevance beyond the persona-match base score.
type articleRule struct {
	article    model.Article
	conditions []articleCondition
}

// articleCondition is one signal threshold worth a relevance boost.
type articleCondition struct {
	met    func(signals *model.SignalResult) bool
	weight float64
}

// articleRules is the fixed education-article catalog.
var articleRules = []articleRule{
	{
		article: model.Article{
			ID:       "article-utilization-payoff",
			Title:    "Understanding credit utilization and how to bring it down",
			Summary:  "Why utilization drives your credit score, and payoff strategies that work.",
			URL:      "https://learn.example.com/credit-utilization",
			Personas: []model.PersonaType{model.PersonaHighUtilization},
		},
		conditions: []articleCondition{
			{weight: strongConditionScore, met: func(s *model.SignalResult) bool {
				return s.Credit.HighestUtilization >= 0.5
			}},
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Credit.MinimumPaymentOnly
			}},
		},
	},
	{
		article: model.Article{
			ID:       "article-avalanche-snowball",
			Title:    "Avalanche vs. snowball: choosing a debt payoff order",
			Summary:  "Two proven approaches to paying down multiple balances.",
			URL:      "https://learn.example.com/debt-payoff-methods",
			Personas: []model.PersonaType{model.PersonaHighUtilization},
		},
		conditions: []articleCondition{
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Credit.CardCount >= 2
			}},
		},
	},
	{
		article: model.Article{
			ID:       "article-irregular-income-budget",
			Title:    "Budgeting on an irregular income",
			Summary:  "Build a baseline budget from your lowest-earning months.",
			URL:      "https://learn.example.com/irregular-income",
			Personas: []model.PersonaType{model.PersonaVariableIncome, model.PersonaLowIncomeStabilizer},
		},
		conditions: []articleCondition{
			{weight: strongConditionScore, met: func(s *model.SignalResult) bool {
				return s.Income.Variability > 0.25
			}},
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Income.HasIncomeGap
			}},
		},
	},
	{
		article: model.Article{
			ID:       "article-subscription-audit",
			Title:    "The one-hour subscription audit",
			Summary:  "A quick process to find recurring charges you no longer use.",
			URL:      "https://learn.example.com/subscription-audit",
			Personas: []model.PersonaType{model.PersonaSubscriptionHeavy},
		},
		conditions: []articleCondition{
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Subscriptions.RecurringCount >= 5
			}},
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Subscriptions.SubscriptionShare >= 15
			}},
		},
	},
	{
		article: model.Article{
			ID:       "article-emergency-fund",
			Title:    "How big should your emergency fund be?",
			Summary:  "Sizing a cash cushion to your actual monthly expenses.",
			URL:      "https://learn.example.com/emergency-fund",
			Personas: []model.PersonaType{model.PersonaSavingsBuilder, model.PersonaLowIncomeStabilizer},
		},
		conditions: []articleCondition{
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Savings.EmergencyFundMonths < 3
			}},
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Savings.MonthlyInflow >= 200
			}},
		},
	},
	{
		article: model.Article{
			ID:       "article-savings-automation",
			Title:    "Automating your savings without feeling the pinch",
			Summary:  "Small automatic transfers compound into real balances.",
			URL:      "https://learn.example.com/savings-automation",
			Personas: []model.PersonaType{model.PersonaSavingsBuilder},
		},
		conditions: []articleCondition{
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Savings.GrowthRatePct >= 2
			}},
		},
	},
	{
		article: model.Article{
			ID:       "article-income-stretch",
			Title:    "Making a tight income go further",
			Summary:  "Prioritizing essentials and finding room to save on a limited budget.",
			URL:      "https://learn.example.com/tight-income",
			Personas: []model.PersonaType{model.PersonaLowIncomeStabilizer},
		},
		conditions: []articleCondition{
			{weight: signalConditionScore, met: func(s *model.SignalResult) bool {
				return s.Income.AnnualizedIncome < 30000
			}},
		},
	},
}

// MatchArticles scores every catalog article against the persona and signal
// state: persona match earns the base score, each satisfied signal condition
// adds its weight, capped at 1.0. Zero-score articles are excluded. Results
// are sorted by descending score, ties broken by catalog order.
func MatchArticles(persona model.PersonaType, signals *model.SignalResult) []model.ArticleMatch {
	if signals == nil {
		return nil
	}

	var matches []model.ArticleMatch
	for _, rule := range articleRules {
		score := 0.0
		for _, p := range rule.article.Personas {
			if p == persona {
				score = personaBaseScore
				break
			}
		}
		if score == 0 {
			continue
		}

		for _, cond := range rule.conditions {
			if cond.met(signals) {
				score += cond.weight
			}
		}
		if score > maxArticleScore {
			score = maxArticleScore
		}

		matches = append(matches, model.ArticleMatch{Article: rule.article, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
