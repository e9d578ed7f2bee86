package plaidsync

import (
	"context"
	"time"

	"github.com/sagebrush-labs/finsight/internal/model"
)

// MockFetcher is a mock implementation of service.RecordFetcher for testing.
type MockFetcher struct {
	// Functions that can be set by tests to control behavior
	GetAccountsFn     func(ctx context.Context, userID string) ([]model.Account, error)
	GetTransactionsFn func(ctx context.Context, userID string, startDate, endDate time.Time) ([]model.Transaction, error)
	GetLiabilitiesFn  func(ctx context.Context, userID string) ([]model.Liability, error)

	// Call tracking
	GetAccountsCalls     []string
	GetTransactionsCalls []GetTransactionsCall
	GetLiabilitiesCalls  []string
}

// GetTransactionsCall records the parameters of a GetTransactions call.
type GetTransactionsCall struct {
	StartDate time.Time
	EndDate   time.Time
	UserID    string
}

// NewMockFetcher creates a new mock record fetcher.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

// GetAccounts implements service.RecordFetcher.
func (m *MockFetcher) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	m.GetAccountsCalls = append(m.GetAccountsCalls, userID)

	if m.GetAccountsFn != nil {
		return m.GetAccountsFn(ctx, userID)
	}
	return []model.Account{}, nil
}

// GetTransactions implements service.RecordFetcher.
func (m *MockFetcher) GetTransactions(ctx context.Context, userID string, startDate, endDate time.Time) ([]model.Transaction, error) {
	m.GetTransactionsCalls = append(m.GetTransactionsCalls, GetTransactionsCall{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})

	if m.GetTransactionsFn != nil {
		return m.GetTransactionsFn(ctx, userID, startDate, endDate)
	}
	return []model.Transaction{}, nil
}

// GetLiabilities implements service.RecordFetcher.
func (m *MockFetcher) GetLiabilities(ctx context.Context, userID string) ([]model.Liability, error) {
	m.GetLiabilitiesCalls = append(m.GetLiabilitiesCalls, userID)

	if m.GetLiabilitiesFn != nil {
		return m.GetLiabilitiesFn(ctx, userID)
	}
	return []model.Liability{}, nil
}
