// Package plaidsync fetches raw account, transaction, and liability records
// from the Plaid API and maps them into internal models.
package plaidsync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/model"
	"github.com/sagebrush-labs/finsight/internal/service"
)

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("plaid client ID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("plaid secret is required")
	}
	if c.Environment == "" {
		return fmt.Errorf("plaid environment is required")
	}

	validEnvs := map[string]bool{
		"sandbox":    true,
		"production": true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid Plaid environment: must be sandbox or production")
	}

	return nil
}

// TokenSource resolves the Plaid access token for a user. Each linked Item
// carries its own token, so the client cannot hold a single one.
type TokenSource interface {
	AccessToken(userID string) (string, error)
}

// StaticTokens is a TokenSource backed by an in-memory map.
type StaticTokens map[string]string

// AccessToken implements TokenSource.
func (s StaticTokens) AccessToken(userID string) (string, error) {
	token, ok := s[userID]
	if !ok || token == "" {
		return "", fmt.Errorf("no access token for user %s", userID)
	}
	return token, nil
}

// Client implements the service.RecordFetcher interface against Plaid.
type Client struct {
	api       *plaid.APIClient
	tokens    TokenSource
	logger    *slog.Logger
	retryOpts *service.RetryOptions
}

// NewClient creates a new Plaid client with the given configuration.
func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		api:    plaid.NewAPIClient(configuration),
		tokens: tokens,
		logger: slog.Default().With("component", "plaidsync"),
		retryOpts: &service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// GetAccounts fetches all accounts for a user from Plaid.
func (c *Client) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	token, err := c.tokens.AccessToken(userID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetching accounts from Plaid", "user_id", userID)

	var plaidAccounts []plaid.AccountBase
	var institutionID string
	retryErr := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(token)
		resp, _, err := c.api.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			return c.classifyError(err, "fetch accounts")
		}

		plaidAccounts = resp.GetAccounts()
		item := resp.GetItem()
		institutionID = item.GetInstitutionId()
		return nil
	}, *c.retryOpts)

	if retryErr != nil {
		return nil, retryErr
	}

	c.logger.Info("Fetched accounts", "user_id", userID, "count", len(plaidAccounts))

	accounts := make([]model.Account, 0, len(plaidAccounts))
	for _, pa := range plaidAccounts {
		accounts = append(accounts, mapAccount(pa, userID, institutionID))
	}

	return accounts, nil
}

// GetTransactions fetches transactions for a user within the specified date range.
func (c *Client) GetTransactions(ctx context.Context, userID string, startDate, endDate time.Time) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	token, err := c.tokens.AccessToken(userID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetching transactions from Plaid",
		"user_id", userID,
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var allTransactions []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		var plaidTransactions []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				token,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			options := plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			}
			request.SetOptions(options)

			resp, _, err := c.api.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				return c.classifyError(err, "fetch transactions")
			}

			plaidTransactions = resp.GetTransactions()

			c.logger.Debug("Fetched transaction batch",
				"count", len(plaidTransactions),
				"offset", offset,
				"total", resp.GetTotalTransactions())

			return nil
		}, *c.retryOpts)

		if retryErr != nil {
			return nil, retryErr
		}

		allTransactions = append(allTransactions, plaidTransactions...)

		if len(plaidTransactions) < int(pageSize) {
			break
		}

		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "user_id", userID, "count", len(allTransactions))

	transactions := make([]model.Transaction, 0, len(allTransactions))
	for _, pt := range allTransactions {
		tx, err := mapTransaction(pt, userID)
		if err != nil {
			c.logger.Warn("Skipping unmappable transaction",
				"transaction_id", pt.GetTransactionId(), "error", err)
			continue
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// GetLiabilities fetches credit liabilities for a user from Plaid.
func (c *Client) GetLiabilities(ctx context.Context, userID string) ([]model.Liability, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	token, err := c.tokens.AccessToken(userID)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Fetching liabilities from Plaid", "user_id", userID)

	var credit []plaid.CreditCardLiability
	retryErr := common.WithRetry(ctx, func() error {
		request := plaid.NewLiabilitiesGetRequest(token)
		resp, _, err := c.api.PlaidApi.LiabilitiesGet(ctx).LiabilitiesGetRequest(*request).Execute()
		if err != nil {
			return c.classifyError(err, "fetch liabilities")
		}

		liabilitiesObj := resp.GetLiabilities()
		credit = liabilitiesObj.GetCredit()
		return nil
	}, *c.retryOpts)

	if retryErr != nil {
		return nil, retryErr
	}

	c.logger.Info("Fetched liabilities", "user_id", userID, "count", len(credit))

	liabilities := make([]model.Liability, 0, len(credit))
	for _, cl := range credit {
		liabilities = append(liabilities, mapLiability(cl, userID))
	}

	return liabilities, nil
}

// classifyError wraps Plaid API failures, marking rate limits as retryable.
func (c *Client) classifyError(err error, op string) error {
	if plaidError := extractPlaidError(err); plaidError != nil {
		if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
			c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: %s", common.ErrRateLimit, plaidError.ErrorMessage),
				Retryable: true,
			}
		}
		return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}
