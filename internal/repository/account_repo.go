package repository

import (
	"context"
	"errors"
	"fmt"

	"bank-admin-service/internal/domain"
	xerrors "bank-admin-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, ac *domain.AccountCreate) (*domain.Account, error)
	GetByNumber(ctx context.Context, number int64) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Search(ctx context.Context, term string) ([]*domain.Account, error)
	SearchByNumber(ctx context.Context, number int64) ([]*domain.Account, error)
	Update(ctx context.Context, number int64, up *domain.AccountUpdate) (*domain.Account, error)
	DeleteTx(ctx context.Context, tx pgx.Tx, number int64) error

	// GetForUpdateTx locks the account row for the duration of tx.
	GetForUpdateTx(ctx context.Context, tx pgx.Tx, number int64) (*domain.Account, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)
}

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepo(db *pgxpool.Pool) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const accountColumns = `
	a.number, a.user_id, a.type, a.balance::text, a.status, a.interest_rate::text, a.created_at,
	u.first_name || ' ' || u.last_name, u.email`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var ac domain.Account
	var balance, rate string
	if err := row.Scan(
		&ac.Number, &ac.UserID, &ac.Type, &balance, &ac.IsActive, &rate, &ac.CreatedAt,
		&ac.HolderName, &ac.HolderEmail,
	); err != nil {
		return nil, err
	}

	var err error
	if ac.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	if ac.InterestRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("failed to parse interest rate: %w", err)
	}
	return &ac, nil
}

func (r *accountRepo) CreateTx(ctx context.Context, tx pgx.Tx, ac *domain.AccountCreate) (*domain.Account, error) {
	var number int64
	err := tx.QueryRow(ctx, `
		INSERT INTO accounts (user_id, type, balance, interest_rate, status)
		VALUES ($1, $2, $3, $4, true)
		RETURNING number
	`, ac.UserID, ac.Type, ac.OpeningBalance, ac.InterestRate).Scan(&number)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	row := tx.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN users u ON a.user_id = u.id
		WHERE a.number = $1
	`, number)
	return scanAccount(row)
}

func (r *accountRepo) GetByNumber(ctx context.Context, number int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN users u ON a.user_id = u.id
		WHERE a.number = $1
	`, number)

	ac, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account %d: %w", number, err)
	}
	return ac, nil
}

// GetForUpdateTx locks the bare account row; holder info is not joined
// so the lock covers exactly one row.
func (r *accountRepo) GetForUpdateTx(ctx context.Context, tx pgx.Tx, number int64) (*domain.Account, error) {
	var ac domain.Account
	var balance, rate string
	err := tx.QueryRow(ctx, `
		SELECT number, user_id, type, balance::text, status, interest_rate::text, created_at
		FROM accounts
		WHERE number = $1
		FOR UPDATE
	`, number).Scan(&ac.Number, &ac.UserID, &ac.Type, &balance, &ac.IsActive, &rate, &ac.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %d: %w", number, err)
	}

	if ac.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	if ac.InterestRate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("failed to parse interest rate: %w", err)
	}
	return &ac, nil
}

func (r *accountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN users u ON a.user_id = u.id
		ORDER BY a.number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *accountRepo) Search(ctx context.Context, term string) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN users u ON a.user_id = u.id
		WHERE u.first_name ILIKE $1 OR u.last_name ILIKE $1
		ORDER BY a.number
	`, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *accountRepo) SearchByNumber(ctx context.Context, number int64) ([]*domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts a
		JOIN users u ON a.user_id = u.id
		WHERE a.number = $1
	`, number)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func (r *accountRepo) Update(ctx context.Context, number int64, up *domain.AccountUpdate) (*domain.Account, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET type          = COALESCE($2, type),
		    status        = COALESCE($3, status),
		    interest_rate = COALESCE($4, interest_rate)
		WHERE number = $1
	`, number, up.Type, up.IsActive, up.InterestRate)
	if err != nil {
		return nil, fmt.Errorf("failed to update account %d: %w", number, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, xerrors.ErrNotFound
	}
	return r.GetByNumber(ctx, number)
}

func (r *accountRepo) DeleteTx(ctx context.Context, tx pgx.Tx, number int64) error {
	ct, err := tx.Exec(ctx, `DELETE FROM accounts WHERE number = $1`, number)
	if err != nil {
		return fmt.Errorf("failed to delete account %d: %w", number, err)
	}
	if ct.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func collectAccounts(rows pgx.Rows) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for rows.Next() {
		ac, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, ac)
	}
	return accounts, rows.Err()
}
