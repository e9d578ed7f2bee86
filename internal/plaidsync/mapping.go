package plaidsync

import (
	"fmt"
	"strings"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// mapAccount converts a Plaid account to the internal model.
func mapAccount(pa plaid.AccountBase, userID, institutionID string) model.Account {
	balances := pa.GetBalances()

	return model.Account{
		ID:               pa.GetAccountId(),
		UserID:           userID,
		Name:             pa.GetName(),
		Institution:      institutionID,
		Type:             model.AccountType(pa.GetType()),
		Subtype:          model.AccountSubtype(pa.GetSubtype()),
		CurrentBalance:   balances.GetCurrent(),
		AvailableBalance: balances.GetAvailable(),
		CreditLimit:      balances.GetLimit(),
	}
}

// mapTransaction converts a Plaid transaction to the internal model.
// Plaid reports positive amounts for money out and negative for money in.
func mapTransaction(pt plaid.Transaction, userID string) (model.Transaction, error) {
	date, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("unparseable transaction date %q: %w", pt.GetDate(), err)
	}

	merchantName := pt.GetMerchantName()
	if merchantName == "" {
		merchantName = pt.GetName()
	}
	merchantName = cleanMerchantName(merchantName)

	amount := pt.GetAmount()
	direction := model.DirectionDebit
	if amount < 0 {
		direction = model.DirectionCredit
		amount = -amount
	}

	tx := model.Transaction{
		Date:         date,
		ID:           pt.GetTransactionId(),
		UserID:       userID,
		AccountID:    pt.GetAccountId(),
		Name:         pt.GetName(),
		MerchantName: merchantName,
		Direction:    direction,
		Amount:       amount,
		Category:     pt.GetCategory(),
		Pending:      pt.GetPending(),
	}
	tx.Hash = tx.GenerateHash()

	return tx, nil
}

// mapLiability converts a Plaid credit card liability to the internal model.
func mapLiability(cl plaid.CreditCardLiability, userID string) model.Liability {
	accountID := cl.GetAccountId()

	l := model.Liability{
		ID:                userID + ":" + accountID,
		UserID:            userID,
		AccountID:         accountID,
		APR:               purchaseAPR(cl.GetAprs()),
		MinimumPayment:    float64(cl.GetMinimumPaymentAmount()),
		LastPaymentAmount: float64(cl.GetLastPaymentAmount()),
		IsOverdue:         cl.GetIsOverdue(),
	}

	if d, err := time.Parse("2006-01-02", cl.GetLastPaymentDate()); err == nil {
		l.LastPaymentDate = d
	}
	if d, err := time.Parse("2006-01-02", cl.GetNextPaymentDueDate()); err == nil {
		l.NextPaymentDueDate = d
	}

	return l
}

// purchaseAPR picks the purchase APR when present, otherwise the first
// reported rate.
func purchaseAPR(aprs []plaid.APR) float64 {
	for _, apr := range aprs {
		if apr.GetAprType() == "purchase_apr" {
			return float64(apr.GetAprPercentage())
		}
	}
	if len(aprs) > 0 {
		return float64(aprs[0].GetAprPercentage())
	}
	return 0
}

// cleanMerchantName standardizes merchant names by title-casing, stripping
// trailing reference numbers, and removing corporate suffixes.
func cleanMerchantName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		if word != "" {
			runes := []rune(word)
			for j := 0; j < len(runes); j++ {
				if j == 0 || !isLetter(runes[j-1]) {
					runes[j] = toUpper(runes[j])
				}
			}
			words[i] = string(runes)
		}
	}

	// A long trailing digit run is almost always a reference number.
	if len(words) > 1 {
		last := words[len(words)-1]
		if len(last) > 5 && isAllDigits(last) {
			words = words[:len(words)-1]
		}
	}
	name = strings.Join(words, " ")

	suffixes := []string{
		" Llc",
		" Inc",
		" Corp",
		" Corporation",
		" Company",
		" Co",
		" Ltd",
		" Limited",
	}

	changed := true
	for changed {
		changed = false
		for _, suffix := range suffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				changed = true
			}
		}
	}

	return strings.TrimSpace(name)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}
