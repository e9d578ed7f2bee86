package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountKinds(t *testing.T) {
	tests := []struct {
		name      string
		account   Account
		creditCard bool
		savings   bool
	}{
		{
			name:       "credit card",
			account:    Account{Type: AccountTypeCredit, Subtype: SubtypeCreditCard},
			creditCard: true,
		},
		{
			name:    "checking is neither",
			account: Account{Type: AccountTypeDepository, Subtype: SubtypeChecking},
		},
		{
			name:    "savings",
			account: Account{Type: AccountTypeDepository, Subtype: SubtypeSavings},
			savings: true,
		},
		{
			name:    "money market",
			account: Account{Type: AccountTypeDepository, Subtype: SubtypeMoneyMarket},
			savings: true,
		},
		{
			name:    "cash management",
			account: Account{Type: AccountTypeDepository, Subtype: SubtypeCashManagement},
			savings: true,
		},
		{
			name:    "hsa",
			account: Account{Type: AccountTypeDepository, Subtype: SubtypeHSA},
			savings: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.creditCard, tt.account.IsCreditCard())
			assert.Equal(t, tt.savings, tt.account.IsSavingsVehicle())
		})
	}
}

func TestEstimatedMonthlyInterest(t *testing.T) {
	l := Liability{APR: 24.0}
	assert.InDelta(t, 24.0, l.EstimatedMonthlyInterest(1200), 0.001)
	assert.InDelta(t, 0.0, l.EstimatedMonthlyInterest(0), 0.001)
}

func TestPersonaPriority(t *testing.T) {
	ordered := []PersonaType{
		PersonaHighUtilization,
		PersonaVariableIncome,
		PersonaSubscriptionHeavy,
		PersonaSavingsBuilder,
		PersonaLowIncomeStabilizer,
	}

	for i, p := range ordered {
		assert.Equal(t, i+1, p.Priority(), "persona %s", p)
		assert.True(t, p.Valid())
	}

	assert.Equal(t, 0, PersonaType("UNKNOWN").Priority())
	assert.False(t, PersonaType("UNKNOWN").Valid())
}
