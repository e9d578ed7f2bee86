package guardrail

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// Guardrail check names, recorded in every decision trace.
const (
	CheckConsent     = "consent"
	CheckEligibility = "eligibility"
	CheckTone        = "tone"
	CheckDisclaimer  = "disclaimer"
	CheckOfferFilter = "offer_filter"
)

// Eligibility thresholds.
const (
	balanceTransferMinIncome = 25000.0
	savingsOptimizationCap   = 50000.0
)

// excludedProducts are partner product types that must never be released.
var excludedProducts = map[model.OfferProductType]bool{
	model.ProductPaydayLoan:              true,
	model.ProductTitleLoan:               true,
	model.ProductPredatoryLender:         true,
	model.ProductHighInterestInstallment: true,
}

// prohibitedPhrases is the fixed shaming/prescriptive phrase list. Any match
// in recommendation text fails the tone check.
var prohibitedPhrases = []string{
	"you should be ashamed",
	"bad with money",
	"irresponsible",
	"reckless spending",
	"you failed",
	"poor discipline",
	"wasting your money",
	"you have no excuse",
	"financially illiterate",
}

// empoweringTerms is the fixed empowering-language list. At least one must
// appear somewhere in the recommendation text.
var empoweringTerms = []string{
	"opportunity",
	"consider",
	"option",
	"choice",
	"you can",
	"explore",
	"when you're ready",
	"empower",
}

// maxMustOccurrences is how many times "must" may appear before the
// recommendation reads as prescriptive.
const maxMustOccurrences = 2

var mustPattern = regexp.MustCompile(`\bmust\b`)

// checkConsent passes only when the user has an active consent grant.
func (p *Pipeline) checkConsent(_ *model.Recommendation, user *model.User, _ *model.SignalResult) model.GuardrailResult {
	if !user.Consent.Active {
		return p.result(CheckConsent, false, "user has not consented to receiving recommendations")
	}
	return p.result(CheckConsent, true, "user consent is active")
}

// checkEligibility rejects recommendations carrying excluded products or
// mismatched to the user's financial state.
func (p *Pipeline) checkEligibility(rec *model.Recommendation, _ *model.User, signals *model.SignalResult) model.GuardrailResult {
	for _, offer := range rec.Offers {
		if excludedProducts[offer.ProductType] {
			return p.result(CheckEligibility, false,
				fmt.Sprintf("offer %q has excluded product type %q", offer.ID, offer.ProductType))
		}
		if offer.ProductType == model.ProductBalanceTransferCard &&
			signals.Income.AnnualizedIncome < balanceTransferMinIncome {
			return p.result(CheckEligibility, false,
				fmt.Sprintf("balance transfer card requires annual income of at least $%.0f", balanceTransferMinIncome))
		}
	}

	if rec.Category == "Savings Optimization" && signals.Savings.TotalBalance > savingsOptimizationCap {
		return p.result(CheckEligibility, false,
			fmt.Sprintf("savings optimization is not relevant above $%.0f in savings", savingsOptimizationCap))
	}

	return p.result(CheckEligibility, true, "no eligibility exclusions matched")
}

// checkTone lints the recommendation's full text for shaming or prescriptive
// language and requires at least one empowering term.
func (p *Pipeline) checkTone(rec *model.Recommendation, _ *model.User, _ *model.SignalResult) model.GuardrailResult {
	text := strings.ToLower(strings.Join([]string{
		rec.Title,
		rec.Description,
		rec.Rationale,
		rec.EducationalContent,
	}, " "))

	for _, phrase := range prohibitedPhrases {
		if strings.Contains(text, phrase) {
			return p.result(CheckTone, false, fmt.Sprintf("contains prohibited phrase %q", phrase))
		}
	}

	if count := len(mustPattern.FindAllString(text, -1)); count > maxMustOccurrences {
		return p.result(CheckTone, false,
			fmt.Sprintf("overly prescriptive: %d occurrences of \"must\"", count))
	}

	for _, term := range empoweringTerms {
		if strings.Contains(text, term) {
			return p.result(CheckTone, true, "tone is supportive")
		}
	}
	return p.result(CheckTone, false, "no empowering language present")
}

// checkDisclaimer injects the standard disclaimer when missing, then
// requires an exact match to the standard template.
func (p *Pipeline) checkDisclaimer(rec *model.Recommendation, _ *model.User, _ *model.SignalResult) model.GuardrailResult {
	if rec.Disclaimer == "" {
		rec.Disclaimer = model.StandardDisclaimer
	}
	if rec.Disclaimer != model.StandardDisclaimer {
		return p.result(CheckDisclaimer, false, "disclaimer does not match the standard template")
	}
	return p.result(CheckDisclaimer, true, "standard disclaimer present")
}

// filterOffers strips excluded-product offers from the recommendation
// regardless of other outcomes. It mutates the recommendation and always
// passes, reporting how many offers it removed.
func (p *Pipeline) filterOffers(rec *model.Recommendation, _ *model.User, _ *model.SignalResult) model.GuardrailResult {
	kept := rec.Offers[:0]
	removed := 0
	for _, offer := range rec.Offers {
		if excludedProducts[offer.ProductType] {
			removed++
			continue
		}
		kept = append(kept, offer)
	}
	rec.Offers = kept

	if removed > 0 {
		return p.result(CheckOfferFilter, true, fmt.Sprintf("removed %d excluded offer(s)", removed))
	}
	return p.result(CheckOfferFilter, true, "no excluded offers attached")
}
