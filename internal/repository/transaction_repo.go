package repository

import (
	"context"
	"fmt"

	"bank-admin-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountNumber int64) ([]*domain.Transaction, error)
	CountByAccount(ctx context.Context, accountNumber int64) (int64, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

// ListByAccount returns the transactions recorded against an account,
// most recent first. Incoming transfers are listed on the recipient's
// statement, not here; this is the raw append-only log view.
func (r *transactionRepo) ListByAccount(ctx context.Context, accountNumber int64) ([]*domain.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, type, amount::text, recipient_account, description, reference, date
		FROM transactions
		WHERE account_id = $1
		ORDER BY date DESC, id DESC
	`, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (r *transactionRepo) CountByAccount(ctx context.Context, accountNumber int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions WHERE account_id = $1 OR recipient_account = $1
	`, accountNumber).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var amount string
	if err := row.Scan(
		&txn.ID, &txn.AccountID, &txn.Type, &amount,
		&txn.RecipientAccount, &txn.Description, &txn.Reference, &txn.Date,
	); err != nil {
		return nil, err
	}

	var err error
	if txn.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	return &txn, nil
}
