package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// TransactionDirection indicates whether money left or entered the account.
type TransactionDirection string

// Transaction direction constants.
const (
	DirectionDebit  TransactionDirection = "DEBIT"
	DirectionCredit TransactionDirection = "CREDIT"
)

// Transaction represents a single financial transaction from any source.
type Transaction struct {
	Date         time.Time
	ID           string
	UserID       string
	AccountID    string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name
	Hash         string
	Direction    TransactionDirection
	Amount       float64 // Always non-negative; Direction carries the sign

	// Category hints from the source (e.g. Plaid category hierarchy)
	Category []string
	Pending  bool
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.MerchantName,
		t.AccountID,
		t.Direction)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// HasCategory reports whether any category hint matches the given label,
// case-insensitively.
func (t *Transaction) HasCategory(label string) bool {
	for _, c := range t.Category {
		if strings.EqualFold(c, label) {
			return true
		}
	}
	return false
}

// IsIncome reports whether the transaction looks like an income deposit.
func (t *Transaction) IsIncome() bool {
	return t.Direction == DirectionCredit && (t.HasCategory("Income") || t.HasCategory("Payroll"))
}

// IsTransfer reports whether the transaction is an internal transfer.
func (t *Transaction) IsTransfer() bool {
	return t.HasCategory("Transfer")
}
