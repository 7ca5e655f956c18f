package repository

import (
	"context"
	"fmt"
	"time"

	"bank-admin-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type StatementRepository interface {
	// ListEntries fetches every transaction touching the account, as
	// source or as transfer recipient, ordered ascending by date, with
	// the signed amount computed relative to the account. Bounds are
	// inclusive.
	ListEntries(ctx context.Context, accountNumber int64, from, to *time.Time) ([]domain.StatementEntry, error)
}

type statementRepo struct {
	db *pgxpool.Pool
}

func NewStatementRepo(db *pgxpool.Pool) StatementRepository {
	return &statementRepo{db: db}
}

func (r *statementRepo) ListEntries(ctx context.Context, accountNumber int64, from, to *time.Time) ([]domain.StatementEntry, error) {
	query := `
		SELECT t.id, t.type, t.amount::text, t.recipient_account, t.description, t.date,
		       (CASE
		            WHEN t.type = 'DEPOSIT' THEN t.amount
		            WHEN t.type = 'TRANSFER' AND t.account_id = $1 THEN -t.amount
		            WHEN t.type = 'TRANSFER' AND t.recipient_account = $1 THEN t.amount
		            ELSE -t.amount
		        END)::text AS signed_amount
		FROM transactions t
		WHERE (t.account_id = $1 OR t.recipient_account = $1)`
	args := []interface{}{accountNumber}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}
	query += " ORDER BY t.date, t.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.StatementEntry
	for rows.Next() {
		var e domain.StatementEntry
		var amount, signed string
		if err := rows.Scan(&e.ID, &e.Type, &amount, &e.RecipientAccount, &e.Description, &e.Date, &signed); err != nil {
			return nil, err
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		if e.SignedAmount, err = decimal.NewFromString(signed); err != nil {
			return nil, fmt.Errorf("failed to parse signed amount: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
