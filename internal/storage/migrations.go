package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: users, raw records, consent",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					email TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS accounts (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL,
					institution TEXT,
					type TEXT NOT NULL,
					subtype TEXT,
					current_balance REAL NOT NULL DEFAULT 0,
					available_balance REAL NOT NULL DEFAULT 0,
					credit_limit REAL NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_accounts_user ON accounts(user_id)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT UNIQUE NOT NULL,
					user_id TEXT NOT NULL,
					account_id TEXT NOT NULL,
					date DATETIME NOT NULL,
					name TEXT NOT NULL,
					merchant_name TEXT,
					direction TEXT NOT NULL,
					amount REAL NOT NULL,
					categories TEXT,
					pending INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_user_date ON transactions(user_id, date)`,
				`CREATE INDEX idx_transactions_merchant ON transactions(merchant_name)`,

				`CREATE TABLE IF NOT EXISTS liabilities (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					account_id TEXT NOT NULL,
					apr REAL NOT NULL DEFAULT 0,
					minimum_payment REAL NOT NULL DEFAULT 0,
					last_payment_amount REAL NOT NULL DEFAULT 0,
					last_payment_date DATETIME,
					next_payment_due_date DATETIME,
					is_overdue INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_liabilities_user ON liabilities(user_id)`,

				`CREATE TABLE IF NOT EXISTS consents (
					user_id TEXT PRIMARY KEY,
					active INTEGER NOT NULL DEFAULT 0,
					granted_at DATETIME,
					revoked_at DATETIME
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Derived signal results, one row per (user, window)",
		Up: func(tx *sql.Tx) error {
			query := `CREATE TABLE IF NOT EXISTS signal_results (
				user_id TEXT NOT NULL,
				window TEXT NOT NULL,
				computed_at DATETIME NOT NULL,
				payload TEXT NOT NULL,
				PRIMARY KEY (user_id, window)
			)`
			if _, err := tx.Exec(query); err != nil {
				return fmt.Errorf("failed to create signal_results: %w", err)
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Persona assignments and recommendations",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS persona_assignments (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL,
					persona_type TEXT NOT NULL,
					priority INTEGER NOT NULL,
					rationale TEXT NOT NULL,
					matched_criteria TEXT NOT NULL,
					assigned_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_personas_user ON persona_assignments(user_id)`,

				`CREATE TABLE IF NOT EXISTS recommendations (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					persona_type TEXT NOT NULL,
					template_id TEXT NOT NULL,
					category TEXT NOT NULL,
					title TEXT NOT NULL,
					description TEXT NOT NULL,
					rationale TEXT NOT NULL,
					educational_content TEXT,
					disclaimer TEXT NOT NULL,
					status TEXT NOT NULL,
					action_items TEXT NOT NULL,
					offers TEXT NOT NULL,
					articles TEXT NOT NULL,
					trace TEXT NOT NULL,
					created_at DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_recommendations_user ON recommendations(user_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// runMigrations applies every migration newer than the stored schema version.
func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, migration.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
