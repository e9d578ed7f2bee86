// Package model defines the core domain models used throughout the application.
package model

import "time"

// AccountType is the broad classification of an account.
type AccountType string

// Account type constants.
const (
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
)

// AccountSubtype refines the account type (e.g. checking vs savings).
type AccountSubtype string

// Account subtype constants.
const (
	SubtypeChecking       AccountSubtype = "checking"
	SubtypeSavings        AccountSubtype = "savings"
	SubtypeMoneyMarket    AccountSubtype = "money market"
	SubtypeCashManagement AccountSubtype = "cash management"
	SubtypeHSA            AccountSubtype = "hsa"
	SubtypeCreditCard     AccountSubtype = "credit card"
)

// Account represents a single financial account belonging to a user.
type Account struct {
	CreatedAt        time.Time
	ID               string
	UserID           string
	Name             string
	Institution      string
	Type             AccountType
	Subtype          AccountSubtype
	CurrentBalance   float64
	AvailableBalance float64
	CreditLimit      float64
}

// IsCreditCard reports whether the account is a credit card.
func (a *Account) IsCreditCard() bool {
	return a.Type == AccountTypeCredit && a.Subtype == SubtypeCreditCard
}

// IsSavingsVehicle reports whether the account counts toward savings signals.
func (a *Account) IsSavingsVehicle() bool {
	switch a.Subtype {
	case SubtypeSavings, SubtypeMoneyMarket, SubtypeCashManagement, SubtypeHSA:
		return true
	default:
		return false
	}
}
