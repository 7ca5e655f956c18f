package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	publisher "bank-admin-service/internal/pub"
	xerrors "bank-admin-service/pkg/xerrors"
)

// ---- mock implementations ----

type mockLedgerRepo struct {
	depositFn  func(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
	withdrawFn func(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
	transferFn func(ctx context.Context, fromAccount, toAccount int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
}

func (m *mockLedgerRepo) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	if m.depositFn != nil {
		return m.depositFn(ctx, accountNumber, amount, description)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockLedgerRepo) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	if m.withdrawFn != nil {
		return m.withdrawFn(ctx, accountNumber, amount, description)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockLedgerRepo) Transfer(ctx context.Context, fromAccount, toAccount int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	if m.transferFn != nil {
		return m.transferFn(ctx, fromAccount, toAccount, amount, description)
	}
	return nil, fmt.Errorf("not configured")
}

type mockLedgerEvents struct {
	events []*publisher.LedgerEvent
}

func (m *mockLedgerEvents) Publish(_ context.Context, event *publisher.LedgerEvent) error {
	m.events = append(m.events, event)
	return nil
}

var (
	adminActor   = domain.Actor{AdminID: 1, Username: "root", Role: domain.RoleAdmin}
	auditorActor = domain.Actor{AdminID: 2, Username: "audit", Role: domain.RoleAuditor}
)

func newLedgerUC(repo *mockLedgerRepo, events *mockLedgerEvents) *LedgerUsecase {
	var ev LedgerEvents
	if events != nil {
		ev = events
	}
	return NewLedgerUsecase(repo, authz.NewRolePolicy(), nil, ev, zap.NewNop())
}

func ledgerResult(account int64, txType domain.TransactionType, amount, balance string) *domain.LedgerResult {
	return &domain.LedgerResult{
		Transaction: domain.Transaction{
			ID:        1,
			AccountID: account,
			Type:      txType,
			Amount:    decimal.RequireFromString(amount),
			Reference: "TXN_TEST",
		},
		Balance: decimal.RequireFromString(balance),
	}
}

func TestDepositPublishesAndReturnsBalance(t *testing.T) {
	repo := &mockLedgerRepo{
		depositFn: func(_ context.Context, account int64, amount decimal.Decimal, _ *string) (*domain.LedgerResult, error) {
			assert.Equal(t, int64(100001), account)
			return ledgerResult(account, domain.TransactionTypeDeposit, amount.String(), "150.00"), nil
		},
	}
	events := &mockLedgerEvents{}
	uc := newLedgerUC(repo, events)

	res, err := uc.Deposit(context.Background(), adminActor, 100001, decimal.RequireFromString("50.00"), nil)
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(decimal.RequireFromString("150.00")))

	require.Len(t, events.events, 1)
	assert.Equal(t, "deposit.completed", events.events[0].EventType)
	assert.Equal(t, int64(1), events.events[0].AdminID)
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	uc := newLedgerUC(&mockLedgerRepo{}, nil)

	for _, amount := range []string{"0", "-10.00"} {
		_, err := uc.Deposit(context.Background(), adminActor, 100001, decimal.RequireFromString(amount), nil)
		assert.ErrorIs(t, err, xerrors.ErrInvalidAmount, "amount=%s", amount)
	}
}

func TestDepositRejectsSubCentPrecision(t *testing.T) {
	uc := newLedgerUC(&mockLedgerRepo{}, nil)

	_, err := uc.Deposit(context.Background(), adminActor, 100001, decimal.RequireFromString("10.001"), nil)
	assert.ErrorIs(t, err, xerrors.ErrInvalidAmount)
}

func TestWithdrawPropagatesInsufficientFunds(t *testing.T) {
	repo := &mockLedgerRepo{
		withdrawFn: func(context.Context, int64, decimal.Decimal, *string) (*domain.LedgerResult, error) {
			return nil, xerrors.ErrInsufficientFunds
		},
	}
	uc := newLedgerUC(repo, nil)

	_, err := uc.Withdraw(context.Background(), adminActor, 100001, decimal.RequireFromString("999.00"), nil)
	assert.ErrorIs(t, err, xerrors.ErrInsufficientFunds)
}

func TestTransferRejectsSameAccount(t *testing.T) {
	uc := newLedgerUC(&mockLedgerRepo{}, nil)

	_, err := uc.Transfer(context.Background(), adminActor, 100001, 100001, decimal.RequireFromString("10.00"), nil)
	assert.ErrorIs(t, err, xerrors.ErrSameAccount)
}

func TestTransferPublishesRecipient(t *testing.T) {
	repo := &mockLedgerRepo{
		transferFn: func(_ context.Context, from, to int64, amount decimal.Decimal, _ *string) (*domain.LedgerResult, error) {
			res := ledgerResult(from, domain.TransactionTypeTransfer, amount.String(), "40.00")
			res.Transaction.RecipientAccount = &to
			return res, nil
		},
	}
	events := &mockLedgerEvents{}
	uc := newLedgerUC(repo, events)

	_, err := uc.Transfer(context.Background(), adminActor, 100001, 100002, decimal.RequireFromString("60.00"), nil)
	require.NoError(t, err)

	require.Len(t, events.events, 1)
	assert.Equal(t, "transfer.completed", events.events[0].EventType)
	require.NotNil(t, events.events[0].ToAccount)
	assert.Equal(t, int64(100002), *events.events[0].ToAccount)
}

func TestAuditorCannotMoveMoney(t *testing.T) {
	uc := newLedgerUC(&mockLedgerRepo{}, nil)

	_, err := uc.Deposit(context.Background(), auditorActor, 100001, decimal.RequireFromString("10.00"), nil)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	_, err = uc.Withdraw(context.Background(), auditorActor, 100001, decimal.RequireFromString("10.00"), nil)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	_, err = uc.Transfer(context.Background(), auditorActor, 100001, 100002, decimal.RequireFromString("10.00"), nil)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}
