package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sagebrush-labs/finsight/internal/common"
	"github.com/sagebrush-labs/finsight/internal/model"
)

// SaveUser inserts or updates a user.
func (s *SQLiteStorage) SaveUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if err := validateString(user.ID, "user.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		user.ID, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUser retrieves one user with their consent state.
func (s *SQLiteStorage) GetUser(ctx context.Context, userID string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(email, ''), created_at FROM users WHERE id = ?`, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	consent, err := s.GetConsent(ctx, userID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if consent != nil {
		user.Consent = *consent
	}
	user.Consent.UserID = userID

	return &user, nil
}

// GetUsers retrieves all users.
func (s *SQLiteStorage) GetUsers(ctx context.Context) ([]model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, COALESCE(u.email, ''), u.created_at, COALESCE(c.active, 0)
		 FROM users u LEFT JOIN consents c ON c.user_id = u.id
		 ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		var user model.User
		var active int
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &active); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Consent = model.Consent{UserID: user.ID, Active: active == 1}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SaveAccounts inserts or updates a batch of accounts.
func (s *SQLiteStorage) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range accounts {
		if err := validateAccount(&accounts[i]); err != nil {
			return fmt.Errorf("account at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, account := range accounts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (id, user_id, name, institution, type, subtype, current_balance, available_balance, credit_limit)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				institution = excluded.institution,
				type = excluded.type,
				subtype = excluded.subtype,
				current_balance = excluded.current_balance,
				available_balance = excluded.available_balance,
				credit_limit = excluded.credit_limit`,
			account.ID, account.UserID, account.Name, account.Institution,
			account.Type, account.Subtype, account.CurrentBalance,
			account.AvailableBalance, account.CreditLimit); err != nil {
			return fmt.Errorf("failed to save account %s: %w", account.ID, err)
		}
	}

	return tx.Commit()
}

// GetAccounts retrieves all accounts for a user.
func (s *SQLiteStorage) GetAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, COALESCE(institution, ''), type, COALESCE(subtype, ''),
		       current_balance, available_balance, credit_limit, created_at
		FROM accounts WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Institution, &a.Type, &a.Subtype,
			&a.CurrentBalance, &a.AvailableBalance, &a.CreditLimit, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// SaveTransactions inserts a batch of transactions, skipping duplicates by hash.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, txn := range transactions {
		hash := txn.Hash
		if hash == "" {
			hash = txn.GenerateHash()
		}
		categories, err := json.Marshal(txn.Category)
		if err != nil {
			return fmt.Errorf("failed to marshal categories: %w", err)
		}

		// OR IGNORE covers both duplicate IDs on re-sync and duplicate
		// content hashes from overlapping fetch windows.
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO transactions (id, hash, user_id, account_id, date, name, merchant_name, direction, amount, categories, pending)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			txn.ID, hash, txn.UserID, txn.AccountID, txn.Date.UTC(), txn.Name,
			txn.MerchantName, txn.Direction, txn.Amount, string(categories), txn.Pending); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetTransactionsInWindow retrieves a user's transactions within [start, end].
func (s *SQLiteStorage) GetTransactionsInWindow(ctx context.Context, userID string, start, end time.Time) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, user_id, account_id, date, name, COALESCE(merchant_name, ''),
		       direction, amount, COALESCE(categories, '[]'), pending
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date, id`, userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var categories string
		if err := rows.Scan(&txn.ID, &txn.Hash, &txn.UserID, &txn.AccountID, &txn.Date,
			&txn.Name, &txn.MerchantName, &txn.Direction, &txn.Amount, &categories, &txn.Pending); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if err := json.Unmarshal([]byte(categories), &txn.Category); err != nil {
			return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

// SaveLiabilities inserts or updates a batch of liabilities.
func (s *SQLiteStorage) SaveLiabilities(ctx context.Context, liabilities []model.Liability) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, l := range liabilities {
		if l.ID == "" || l.UserID == "" || l.AccountID == "" {
			return fmt.Errorf("%w: liability requires ID, user ID, and account ID", ErrNilParameter)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO liabilities (id, user_id, account_id, apr, minimum_payment, last_payment_amount, last_payment_date, next_payment_due_date, is_overdue)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				apr = excluded.apr,
				minimum_payment = excluded.minimum_payment,
				last_payment_amount = excluded.last_payment_amount,
				last_payment_date = excluded.last_payment_date,
				next_payment_due_date = excluded.next_payment_due_date,
				is_overdue = excluded.is_overdue`,
			l.ID, l.UserID, l.AccountID, l.APR, l.MinimumPayment, l.LastPaymentAmount,
			l.LastPaymentDate.UTC(), l.NextPaymentDueDate.UTC(), l.IsOverdue); err != nil {
			return fmt.Errorf("failed to save liability %s: %w", l.ID, err)
		}
	}

	return tx.Commit()
}

// GetLiabilities retrieves all liabilities for a user.
func (s *SQLiteStorage) GetLiabilities(ctx context.Context, userID string) ([]model.Liability, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, account_id, apr, minimum_payment, last_payment_amount,
		       last_payment_date, next_payment_due_date, is_overdue
		FROM liabilities WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query liabilities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var liabilities []model.Liability
	for rows.Next() {
		var l model.Liability
		if err := rows.Scan(&l.ID, &l.UserID, &l.AccountID, &l.APR, &l.MinimumPayment,
			&l.LastPaymentAmount, &l.LastPaymentDate, &l.NextPaymentDueDate, &l.IsOverdue); err != nil {
			return nil, fmt.Errorf("failed to scan liability: %w", err)
		}
		liabilities = append(liabilities, l)
	}
	return liabilities, rows.Err()
}
