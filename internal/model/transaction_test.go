package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHash(t *testing.T) {
	base := Transaction{
		Date:         time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		AccountID:    "acc-1",
		MerchantName: "Netflix",
		Direction:    DirectionDebit,
		Amount:       15.99,
	}

	t.Run("deterministic", func(t *testing.T) {
		first := base.GenerateHash()
		second := base.GenerateHash()
		assert.Equal(t, first, second)
		assert.NotEmpty(t, first)
	})

	t.Run("direction changes hash", func(t *testing.T) {
		credit := base
		credit.Direction = DirectionCredit
		assert.NotEqual(t, base.GenerateHash(), credit.GenerateHash())
	})

	t.Run("amount changes hash", func(t *testing.T) {
		other := base
		other.Amount = 16.99
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})
}

func TestTransactionClassification(t *testing.T) {
	tests := []struct {
		name       string
		direction  TransactionDirection
		categories []string
		isIncome   bool
		isTransfer bool
	}{
		{
			name:       "payroll credit is income",
			direction:  DirectionCredit,
			categories: []string{"Payroll"},
			isIncome:   true,
		},
		{
			name:       "income category credit is income",
			direction:  DirectionCredit,
			categories: []string{"Income"},
			isIncome:   true,
		},
		{
			name:       "case insensitive category match",
			direction:  DirectionCredit,
			categories: []string{"INCOME"},
			isIncome:   true,
		},
		{
			name:       "debit with income category is not income",
			direction:  DirectionDebit,
			categories: []string{"Income"},
			isIncome:   false,
		},
		{
			name:       "refund credit is not income",
			direction:  DirectionCredit,
			categories: []string{"Shops"},
			isIncome:   false,
		},
		{
			name:       "transfer category",
			direction:  DirectionDebit,
			categories: []string{"Transfer"},
			isTransfer: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := Transaction{Direction: tt.direction, Category: tt.categories}
			assert.Equal(t, tt.isIncome, txn.IsIncome())
			assert.Equal(t, tt.isTransfer, txn.IsTransfer())
		})
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input   string
		want    Window
		wantErr bool
		days    int
	}{
		{input: "30d", want: Window30Days, days: 30},
		{input: "180d", want: Window180Days, days: 180},
		{input: "90d", wantErr: true},
		{input: "", wantErr: true},
		{input: "30D", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWindow(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.days, got.Days())
			assert.True(t, got.Valid())
		})
	}
}

func TestSignalResultValidate(t *testing.T) {
	valid := SignalResult{UserID: "user-1", Window: Window30Days}
	require.NoError(t, valid.Validate())

	missingUser := SignalResult{Window: Window30Days}
	require.Error(t, missingUser.Validate())

	badWindow := SignalResult{UserID: "user-1", Window: Window("7d")}
	require.Error(t, badWindow.Validate())
}
