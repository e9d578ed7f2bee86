package model

// OfferProductType classifies a partner offer's financial product.
type OfferProductType string

// Offer product type constants.
const (
	ProductBalanceTransferCard OfferProductType = "balance transfer card"
	ProductHighYieldSavings    OfferProductType = "high-yield savings"
	ProductBudgetingApp        OfferProductType = "budgeting app"
	ProductSubscriptionManager OfferProductType = "subscription manager"
	ProductCreditCounseling    OfferProductType = "credit counseling"

	// Excluded product types; the guardrail pipeline never releases these.
	ProductPaydayLoan              OfferProductType = "payday loan"
	ProductTitleLoan               OfferProductType = "title loan"
	ProductPredatoryLender         OfferProductType = "predatory lender"
	ProductHighInterestInstallment OfferProductType = "high-interest installment"
)

// PartnerOffer is one matched partner product attached to a recommendation.
type PartnerOffer struct {
	ID          string
	Partner     string
	ProductType OfferProductType
	Title       string
	Description string
	URL         string
}

// Article is one entry in the educational content catalog.
type Article struct {
	ID       string
	Title    string
	Summary  string
	URL      string
	Personas []PersonaType
}

// ArticleMatch is an article plus its relevance score for a user.
type ArticleMatch struct {
	Article Article
	Score   float64
}
