package repository

import (
	"context"
	"fmt"

	"bank-admin-service/internal/domain"
	"bank-admin-service/pkg/id"
	xerrors "bank-admin-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerRepository applies money-movement operations. Every operation
// runs inside one database transaction: the balance check, the balance
// update and the log append commit together or not at all. Account rows
// are locked with SELECT ... FOR UPDATE so concurrent withdrawals on the
// same account cannot both pass the balance check.
type LedgerRepository interface {
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
	Transfer(ctx context.Context, fromAccount, toAccount int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
}

type ledgerRepo struct {
	db          *pgxpool.Pool
	accountRepo AccountRepository
}

func NewLedgerRepo(db *pgxpool.Pool, accountRepo AccountRepository) LedgerRepository {
	return &ledgerRepo{db: db, accountRepo: accountRepo}
}

func (r *ledgerRepo) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *ledgerRepo) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := r.accountRepo.GetForUpdateTx(ctx, tx, accountNumber)
	if err != nil {
		return nil, err
	}

	newBalance, err := updateBalanceTx(ctx, tx, accountNumber, account.Balance.Add(amount))
	if err != nil {
		return nil, err
	}

	txn, err := appendTransactionTx(ctx, tx, accountNumber, domain.TransactionTypeDeposit, amount, nil, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit deposit: %w", err)
	}

	return &domain.LedgerResult{Transaction: *txn, Balance: newBalance}, nil
}

func (r *ledgerRepo) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := r.accountRepo.GetForUpdateTx(ctx, tx, accountNumber)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, xerrors.ErrInsufficientFunds
	}

	newBalance, err := updateBalanceTx(ctx, tx, accountNumber, account.Balance.Sub(amount))
	if err != nil {
		return nil, err
	}

	txn, err := appendTransactionTx(ctx, tx, accountNumber, domain.TransactionTypeWithdraw, amount, nil, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	return &domain.LedgerResult{Transaction: *txn, Balance: newBalance}, nil
}

func (r *ledgerRepo) Transfer(ctx context.Context, fromAccount, toAccount int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	if fromAccount == toAccount {
		return nil, xerrors.ErrSameAccount
	}

	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending number order so two opposing
	// transfers cannot deadlock.
	first, second := fromAccount, toAccount
	if second < first {
		first, second = second, first
	}

	locked := make(map[int64]*domain.Account, 2)
	for _, number := range []int64{first, second} {
		account, err := r.accountRepo.GetForUpdateTx(ctx, tx, number)
		if err != nil {
			return nil, err
		}
		locked[number] = account
	}

	source := locked[fromAccount]
	dest := locked[toAccount]

	if source.Balance.LessThan(amount) {
		return nil, xerrors.ErrInsufficientFunds
	}

	newBalance, err := updateBalanceTx(ctx, tx, fromAccount, source.Balance.Sub(amount))
	if err != nil {
		return nil, err
	}
	if _, err := updateBalanceTx(ctx, tx, toAccount, dest.Balance.Add(amount)); err != nil {
		return nil, err
	}

	// One TRANSFER row, attributed to the source and carrying the
	// recipient; statements mirror it as a credit on the recipient side.
	txn, err := appendTransactionTx(ctx, tx, fromAccount, domain.TransactionTypeTransfer, amount, &toAccount, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transfer: %w", err)
	}

	return &domain.LedgerResult{Transaction: *txn, Balance: newBalance}, nil
}

func updateBalanceTx(ctx context.Context, tx pgx.Tx, accountNumber int64, balance decimal.Decimal) (decimal.Decimal, error) {
	var updated string
	err := tx.QueryRow(ctx, `
		UPDATE accounts
		SET balance = $2
		WHERE number = $1
		RETURNING balance::text
	`, accountNumber, balance).Scan(&updated)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to update balance of account %d: %w", accountNumber, err)
	}
	return decimal.NewFromString(updated)
}

func appendTransactionTx(ctx context.Context, tx pgx.Tx, accountNumber int64, txType domain.TransactionType, amount decimal.Decimal, recipient *int64, description *string) (*domain.Transaction, error) {
	txn := domain.Transaction{
		AccountID:        accountNumber,
		Type:             txType,
		Amount:           amount,
		RecipientAccount: recipient,
		Description:      description,
		Reference:        id.GenerateReference("TXN"),
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO transactions (account_id, type, amount, recipient_account, description, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date
	`, accountNumber, txType, amount, recipient, description, txn.Reference).Scan(&txn.ID, &txn.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to append %s transaction: %w", txType, err)
	}
	return &txn, nil
}
