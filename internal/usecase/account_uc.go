package usecase

import (
	"context"
	"strconv"
	"strings"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	"bank-admin-service/internal/repository"
	xerrors "bank-admin-service/pkg/xerrors"

	"go.uber.org/zap"
)

// AccountUsecase is the account/user registry: CRUD with field
// validation, plus account search.
type AccountUsecase struct {
	accountRepo     repository.AccountRepository
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	policy          authz.Policy
	logger          *zap.Logger
}

func NewAccountUsecase(
	accountRepo repository.AccountRepository,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	policy authz.Policy,
	logger *zap.Logger,
) *AccountUsecase {
	return &AccountUsecase{
		accountRepo:     accountRepo,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		policy:          policy,
		logger:          logger,
	}
}

// OpenAccountRequest carries everything needed to open an account for a
// new customer: the contact record and the account terms.
type OpenAccountRequest struct {
	User    domain.UserCreate
	Account domain.AccountCreate
}

func (r *OpenAccountRequest) validate() error {
	u := r.User
	if u.FirstName == "" || u.LastName == "" || u.Email == "" || u.Phone == "" || u.Address == "" {
		return xerrors.ErrValidation
	}
	if u.DateOfBirth.IsZero() {
		return xerrors.ErrValidation
	}
	return r.Account.Validate()
}

// OpenAccount creates the owning user and the account in one database
// transaction.
func (uc *AccountUsecase) OpenAccount(ctx context.Context, actor domain.Actor, req *OpenAccountRequest) (*domain.Account, error) {
	if err := uc.policy.Can(actor, domain.ActionManageAccounts); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	tx, err := uc.accountRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	user, err := uc.userRepo.CreateTx(ctx, tx, &req.User)
	if err != nil {
		return nil, err
	}

	create := req.Account
	create.UserID = user.ID
	account, err := uc.accountRepo.CreateTx(ctx, tx, &create)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info("account opened",
		zap.Int64("account", account.Number),
		zap.Int64("user_id", user.ID),
		zap.Int64("admin_id", actor.AdminID),
	)
	return account, nil
}

func (uc *AccountUsecase) GetAccount(ctx context.Context, actor domain.Actor, number int64) (*domain.Account, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAccounts); err != nil {
		return nil, err
	}
	return uc.accountRepo.GetByNumber(ctx, number)
}

func (uc *AccountUsecase) ListAccounts(ctx context.Context, actor domain.Actor) ([]*domain.Account, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAccounts); err != nil {
		return nil, err
	}
	return uc.accountRepo.List(ctx)
}

func (uc *AccountUsecase) UpdateAccount(ctx context.Context, actor domain.Actor, number int64, up *domain.AccountUpdate) (*domain.Account, error) {
	if err := uc.policy.Can(actor, domain.ActionManageAccounts); err != nil {
		return nil, err
	}
	if err := up.Validate(); err != nil {
		return nil, err
	}
	return uc.accountRepo.Update(ctx, number, up)
}

// DeleteAccount removes an account. Refused unless the balance is
// exactly zero; the balance is re-read under a row lock so a concurrent
// deposit cannot slip in between check and delete.
func (uc *AccountUsecase) DeleteAccount(ctx context.Context, actor domain.Actor, number int64) error {
	if err := uc.policy.Can(actor, domain.ActionManageAccounts); err != nil {
		return err
	}

	tx, err := uc.accountRepo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetForUpdateTx(ctx, tx, number)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return xerrors.ErrNonZeroBalance
	}

	if err := uc.accountRepo.DeleteTx(ctx, tx, number); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.logger.Info("account deleted",
		zap.Int64("account", number),
		zap.Int64("admin_id", actor.AdminID),
	)
	return nil
}

// SearchAccounts resolves a query to an exact account-number match when
// numeric, otherwise a case-insensitive substring match on the holder's
// first or last name.
func (uc *AccountUsecase) SearchAccounts(ctx context.Context, actor domain.Actor, term string) ([]*domain.Account, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAccounts); err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, xerrors.ErrValidation
	}

	if number, err := strconv.ParseInt(term, 10, 64); err == nil {
		return uc.accountRepo.SearchByNumber(ctx, number)
	}
	return uc.accountRepo.Search(ctx, term)
}

func (uc *AccountUsecase) ListTransactions(ctx context.Context, actor domain.Actor, number int64) ([]*domain.Transaction, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAccounts); err != nil {
		return nil, err
	}
	if _, err := uc.accountRepo.GetByNumber(ctx, number); err != nil {
		return nil, err
	}
	return uc.transactionRepo.ListByAccount(ctx, number)
}
