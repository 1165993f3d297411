package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/debtwatch/backend/internal/models"
)

// PostgresStore persists transactions in a single table with a uniqueness
// constraint on recorded_at.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Name() string { return "postgres" }

// EnsureSchema creates the transactions table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			date DATE NOT NULL,
			category_name TEXT NOT NULL DEFAULT '',
			payee TEXT NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			debit_account_name TEXT NOT NULL DEFAULT '',
			debit_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			credit_account_name TEXT NOT NULL DEFAULT '',
			credit_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'UAH',
			recorded_at TIMESTAMPTZ NOT NULL UNIQUE,
			raw_line TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure transactions table: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, category_name, payee, comment,
			debit_account_name, debit_amount,
			credit_account_name, credit_amount,
			currency, recorded_at, raw_line
		FROM transactions
		ORDER BY recorded_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.OccurredOn, &t.Category, &t.Counterparty, &t.Note,
			&t.DebitAccount, &t.DebitAmount,
			&t.CreditAccount, &t.CreditAmount,
			&t.Currency, &t.RecordedAt, &t.SourceLine,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}

// AddTransactions inserts rows inside one database transaction. Rows whose
// recorded_at already exists are skipped via ON CONFLICT DO NOTHING, so a
// repeated upload adds nothing and returns 0.
func (s *PostgresStore) AddTransactions(ctx context.Context, txs []models.Transaction) (int, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	added := 0
	for _, t := range txs {
		res, err := dbTx.ExecContext(ctx, `
			INSERT INTO transactions (
				date, category_name, payee, comment,
				debit_account_name, debit_amount,
				credit_account_name, credit_amount,
				currency, recorded_at, raw_line
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (recorded_at) DO NOTHING`,
			t.OccurredOn, t.Category, t.Counterparty, t.Note,
			t.DebitAccount, t.DebitAmount,
			t.CreditAccount, t.CreditAmount,
			t.Currency, t.RecordedAt, t.SourceLine,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert transaction: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(n)
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}
	return added, nil
}
