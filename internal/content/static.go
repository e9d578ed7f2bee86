package content

import (
	"context"
	"strings"
)

// staticClient serves canned educational text keyed on prompt keywords. It is
// the offline provider: useful for development and as the factory default
// when no API key is configured.
type staticClient struct{}

func newStaticClient() Client {
	return &staticClient{}
}

// Complete returns deterministic text for the prompt. It never fails.
func (c *staticClient) Complete(_ context.Context, prompt string) (string, error) {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "utilization") || strings.Contains(lower, "credit"):
		return "Credit utilization is the share of your available credit you're currently using, " +
			"and it is one of the most responsive parts of a credit profile. Bringing balances down, " +
			"even gradually, is an opportunity to reduce interest costs and strengthen your score over time.", nil
	case strings.Contains(lower, "subscription") || strings.Contains(lower, "recurring"):
		return "Recurring charges have a way of accumulating quietly. Reviewing them once in a while " +
			"is a simple opportunity to make sure every subscription still earns its place in your budget.", nil
	case strings.Contains(lower, "saving") || strings.Contains(lower, "emergency"):
		return "Consistent saving, even in small amounts, builds a cushion that makes unexpected " +
			"expenses easier to absorb. Consider treating savings like any other recurring commitment.", nil
	case strings.Contains(lower, "income") || strings.Contains(lower, "budget"):
		return "When income varies, anchoring your budget to your lower-earning months can bring " +
			"welcome predictability. Consider setting aside part of stronger months to smooth the leaner ones.", nil
	default:
		return "Small, consistent steps are the foundation of financial wellness. Consider reviewing " +
			"your finances regularly to find the opportunities that fit your situation.", nil
	}
}
