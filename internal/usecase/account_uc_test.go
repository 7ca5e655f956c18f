package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	xerrors "bank-admin-service/pkg/xerrors"
)

// ---- mock implementations ----

// fakeTx satisfies pgx.Tx for flows that only commit or roll back; any
// other method panics, which is what we want in a unit test.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type mockAccountRepo struct {
	createTxFn       func(ctx context.Context, tx pgx.Tx, ac *domain.AccountCreate) (*domain.Account, error)
	getByNumberFn    func(ctx context.Context, number int64) (*domain.Account, error)
	listFn           func(ctx context.Context) ([]*domain.Account, error)
	searchFn         func(ctx context.Context, term string) ([]*domain.Account, error)
	searchByNumberFn func(ctx context.Context, number int64) ([]*domain.Account, error)
	updateFn         func(ctx context.Context, number int64, up *domain.AccountUpdate) (*domain.Account, error)
	deleteTxFn       func(ctx context.Context, tx pgx.Tx, number int64) error
	getForUpdateFn   func(ctx context.Context, tx pgx.Tx, number int64) (*domain.Account, error)

	tx *fakeTx
}

func (m *mockAccountRepo) CreateTx(ctx context.Context, tx pgx.Tx, ac *domain.AccountCreate) (*domain.Account, error) {
	if m.createTxFn != nil {
		return m.createTxFn(ctx, tx, ac)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccountRepo) GetByNumber(ctx context.Context, number int64) (*domain.Account, error) {
	if m.getByNumberFn != nil {
		return m.getByNumberFn(ctx, number)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccountRepo) Search(ctx context.Context, term string) ([]*domain.Account, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, term)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccountRepo) SearchByNumber(ctx context.Context, number int64) ([]*domain.Account, error) {
	if m.searchByNumberFn != nil {
		return m.searchByNumberFn(ctx, number)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccountRepo) Update(ctx context.Context, number int64, up *domain.AccountUpdate) (*domain.Account, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, number, up)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccountRepo) DeleteTx(ctx context.Context, tx pgx.Tx, number int64) error {
	if m.deleteTxFn != nil {
		return m.deleteTxFn(ctx, tx, number)
	}
	return fmt.Errorf("not configured")
}

func (m *mockAccountRepo) GetForUpdateTx(ctx context.Context, tx pgx.Tx, number int64) (*domain.Account, error) {
	if m.getForUpdateFn != nil {
		return m.getForUpdateFn(ctx, tx, number)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccountRepo) BeginTx(context.Context) (pgx.Tx, error) {
	if m.tx == nil {
		m.tx = &fakeTx{}
	}
	return m.tx, nil
}

type mockUserRepo struct {
	createTxFn func(ctx context.Context, tx pgx.Tx, uc *domain.UserCreate) (*domain.User, error)
	getByIDFn  func(ctx context.Context, id int64) (*domain.User, error)
	updateFn   func(ctx context.Context, id int64, up *domain.UserUpdate) (*domain.User, error)
}

func (m *mockUserRepo) CreateTx(ctx context.Context, tx pgx.Tx, uc *domain.UserCreate) (*domain.User, error) {
	if m.createTxFn != nil {
		return m.createTxFn(ctx, tx, uc)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockUserRepo) Update(ctx context.Context, id int64, up *domain.UserUpdate) (*domain.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, up)
	}
	return nil, fmt.Errorf("not configured")
}

type mockTransactionRepo struct {
	listFn func(ctx context.Context, accountNumber int64) ([]*domain.Transaction, error)
}

func (m *mockTransactionRepo) ListByAccount(ctx context.Context, accountNumber int64) ([]*domain.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountNumber)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockTransactionRepo) CountByAccount(context.Context, int64) (int64, error) {
	return 0, nil
}

// ---- helpers ----

func newAccountUC(accounts *mockAccountRepo, users *mockUserRepo, txns *mockTransactionRepo) *AccountUsecase {
	if users == nil {
		users = &mockUserRepo{}
	}
	if txns == nil {
		txns = &mockTransactionRepo{}
	}
	return NewAccountUsecase(accounts, users, txns, authz.NewRolePolicy(), zap.NewNop())
}

func validOpenRequest() *OpenAccountRequest {
	return &OpenAccountRequest{
		User: domain.UserCreate{
			FirstName:   "Jane",
			LastName:    "Mwangi",
			Email:       "jane@example.com",
			Phone:       "+254700000001",
			Address:     "12 Haile Selassie Ave",
			DateOfBirth: time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC),
		},
		Account: domain.AccountCreate{
			Type:           domain.AccountTypeChecking,
			OpeningBalance: decimal.RequireFromString("100.00"),
			InterestRate:   decimal.RequireFromString("1.50"),
		},
	}
}

// ---- tests ----

func TestOpenAccountCreatesUserAndAccountInOneTx(t *testing.T) {
	accounts := &mockAccountRepo{
		createTxFn: func(_ context.Context, _ pgx.Tx, ac *domain.AccountCreate) (*domain.Account, error) {
			assert.Equal(t, int64(7), ac.UserID)
			return &domain.Account{Number: 100001, UserID: ac.UserID, Type: ac.Type, Balance: ac.OpeningBalance}, nil
		},
	}
	users := &mockUserRepo{
		createTxFn: func(_ context.Context, _ pgx.Tx, _ *domain.UserCreate) (*domain.User, error) {
			return &domain.User{ID: 7}, nil
		},
	}
	uc := newAccountUC(accounts, users, nil)

	account, err := uc.OpenAccount(context.Background(), adminActor, validOpenRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(100001), account.Number)
	assert.True(t, accounts.tx.committed)
}

func TestOpenAccountRejectsMissingContactFields(t *testing.T) {
	uc := newAccountUC(&mockAccountRepo{}, nil, nil)

	req := validOpenRequest()
	req.User.Email = ""
	_, err := uc.OpenAccount(context.Background(), adminActor, req)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestOpenAccountRejectsBadAccountTerms(t *testing.T) {
	uc := newAccountUC(&mockAccountRepo{}, nil, nil)

	req := validOpenRequest()
	req.Account.Type = "premium"
	_, err := uc.OpenAccount(context.Background(), adminActor, req)
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	req = validOpenRequest()
	req.Account.OpeningBalance = decimal.RequireFromString("-5.00")
	_, err = uc.OpenAccount(context.Background(), adminActor, req)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestOpenAccountRollsBackWhenUserInsertFails(t *testing.T) {
	accounts := &mockAccountRepo{}
	users := &mockUserRepo{
		createTxFn: func(context.Context, pgx.Tx, *domain.UserCreate) (*domain.User, error) {
			return nil, xerrors.ErrDuplicateUser
		},
	}
	uc := newAccountUC(accounts, users, nil)

	_, err := uc.OpenAccount(context.Background(), adminActor, validOpenRequest())
	assert.ErrorIs(t, err, xerrors.ErrDuplicateUser)
	assert.False(t, accounts.tx.committed)
	assert.True(t, accounts.tx.rolledBack)
}

func TestDeleteAccountRefusesNonZeroBalance(t *testing.T) {
	accounts := &mockAccountRepo{
		getForUpdateFn: func(_ context.Context, _ pgx.Tx, number int64) (*domain.Account, error) {
			return &domain.Account{Number: number, Balance: decimal.RequireFromString("0.01")}, nil
		},
	}
	uc := newAccountUC(accounts, nil, nil)

	err := uc.DeleteAccount(context.Background(), adminActor, 100001)
	assert.ErrorIs(t, err, xerrors.ErrNonZeroBalance)
	assert.False(t, accounts.tx.committed)
}

func TestDeleteAccountCommitsOnZeroBalance(t *testing.T) {
	accounts := &mockAccountRepo{
		getForUpdateFn: func(_ context.Context, _ pgx.Tx, number int64) (*domain.Account, error) {
			return &domain.Account{Number: number, Balance: decimal.Zero}, nil
		},
		deleteTxFn: func(context.Context, pgx.Tx, int64) error { return nil },
	}
	uc := newAccountUC(accounts, nil, nil)

	err := uc.DeleteAccount(context.Background(), adminActor, 100001)
	require.NoError(t, err)
	assert.True(t, accounts.tx.committed)
}

func TestSearchAccountsDispatchesOnNumericTerm(t *testing.T) {
	var byNumber, byName bool
	accounts := &mockAccountRepo{
		searchByNumberFn: func(_ context.Context, number int64) ([]*domain.Account, error) {
			byNumber = true
			assert.Equal(t, int64(100001), number)
			return nil, nil
		},
		searchFn: func(_ context.Context, term string) ([]*domain.Account, error) {
			byName = true
			assert.Equal(t, "mwangi", term)
			return nil, nil
		},
	}
	uc := newAccountUC(accounts, nil, nil)

	_, err := uc.SearchAccounts(context.Background(), adminActor, "100001")
	require.NoError(t, err)
	assert.True(t, byNumber)

	_, err = uc.SearchAccounts(context.Background(), adminActor, "  mwangi ")
	require.NoError(t, err)
	assert.True(t, byName)

	_, err = uc.SearchAccounts(context.Background(), adminActor, "   ")
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestListTransactionsChecksAccountExists(t *testing.T) {
	accounts := &mockAccountRepo{
		getByNumberFn: func(context.Context, int64) (*domain.Account, error) {
			return nil, xerrors.ErrNotFound
		},
	}
	uc := newAccountUC(accounts, nil, nil)

	_, err := uc.ListTransactions(context.Background(), adminActor, 999999)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestAuditorCanViewButNotManage(t *testing.T) {
	accounts := &mockAccountRepo{
		listFn: func(context.Context) ([]*domain.Account, error) {
			return []*domain.Account{{Number: 100001}}, nil
		},
	}
	uc := newAccountUC(accounts, nil, nil)

	list, err := uc.ListAccounts(context.Background(), auditorActor)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.OpenAccount(context.Background(), auditorActor, validOpenRequest())
	assert.ErrorIs(t, err, xerrors.ErrForbidden)

	err = uc.DeleteAccount(context.Background(), auditorActor, 100001)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}
