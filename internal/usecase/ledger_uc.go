package usecase

import (
	"context"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	publisher "bank-admin-service/internal/pub"
	"bank-admin-service/internal/repository"
	xerrors "bank-admin-service/pkg/xerrors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerEvents is the slice of the event publisher the ledger needs.
type LedgerEvents interface {
	Publish(ctx context.Context, event *publisher.LedgerEvent) error
}

type LedgerUsecase struct {
	ledgerRepo repository.LedgerRepository
	policy     authz.Policy
	cache      ReadCache
	events     LedgerEvents
	logger     *zap.Logger
}

func NewLedgerUsecase(
	ledgerRepo repository.LedgerRepository,
	policy authz.Policy,
	cache ReadCache,
	events LedgerEvents,
	logger *zap.Logger,
) *LedgerUsecase {
	return &LedgerUsecase{
		ledgerRepo: ledgerRepo,
		policy:     policy,
		cache:      cache,
		events:     events,
		logger:     logger,
	}
}

// validateAmount enforces the monetary input rules: strictly positive,
// at most two fractional digits.
func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return xerrors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return xerrors.ErrInvalidAmount
	}
	return nil
}

func (uc *LedgerUsecase) Deposit(ctx context.Context, actor domain.Actor, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	if err := uc.policy.Can(actor, domain.ActionMoveMoney); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	res, err := uc.ledgerRepo.Deposit(ctx, accountNumber, amount, description)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, accountNumber)
	uc.publish(ctx, "deposit.completed", actor, res, nil)

	uc.logger.Info("deposit processed",
		zap.Int64("account", accountNumber),
		zap.String("amount", amount.StringFixed(2)),
		zap.Int64("admin_id", actor.AdminID),
	)
	return res, nil
}

func (uc *LedgerUsecase) Withdraw(ctx context.Context, actor domain.Actor, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	if err := uc.policy.Can(actor, domain.ActionMoveMoney); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	res, err := uc.ledgerRepo.Withdraw(ctx, accountNumber, amount, description)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, accountNumber)
	uc.publish(ctx, "withdrawal.completed", actor, res, nil)

	uc.logger.Info("withdrawal processed",
		zap.Int64("account", accountNumber),
		zap.String("amount", amount.StringFixed(2)),
		zap.Int64("admin_id", actor.AdminID),
	)
	return res, nil
}

func (uc *LedgerUsecase) Transfer(ctx context.Context, actor domain.Actor, fromAccount, toAccount int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error) {
	if err := uc.policy.Can(actor, domain.ActionMoveMoney); err != nil {
		return nil, err
	}
	if fromAccount == toAccount {
		return nil, xerrors.ErrSameAccount
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	res, err := uc.ledgerRepo.Transfer(ctx, fromAccount, toAccount, amount, description)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, fromAccount, toAccount)
	uc.publish(ctx, "transfer.completed", actor, res, &toAccount)

	uc.logger.Info("transfer processed",
		zap.Int64("from", fromAccount),
		zap.Int64("to", toAccount),
		zap.String("amount", amount.StringFixed(2)),
		zap.Int64("admin_id", actor.AdminID),
	)
	return res, nil
}

// invalidate bumps the read-model version counters so cached statements
// for the touched accounts and cached analytics aggregates are no
// longer served after a committed mutation.
func (uc *LedgerUsecase) invalidate(ctx context.Context, accounts ...int64) {
	if uc.cache == nil {
		return
	}
	for _, number := range accounts {
		uc.cache.Bump(ctx, statementVersionKey(number))
	}
	uc.cache.Bump(ctx, analyticsVersionKey)
}

func (uc *LedgerUsecase) publish(ctx context.Context, eventType string, actor domain.Actor, res *domain.LedgerResult, toAccount *int64) {
	if uc.events == nil {
		return
	}
	err := uc.events.Publish(ctx, &publisher.LedgerEvent{
		EventType:     eventType,
		AdminID:       actor.AdminID,
		Reference:     res.Transaction.Reference,
		AccountNumber: res.Transaction.AccountID,
		ToAccount:     toAccount,
		Amount:        res.Transaction.Amount,
		BalanceAfter:  res.Balance,
	})
	if err != nil {
		uc.logger.Warn("failed to publish ledger event", zap.String("event_type", eventType), zap.Error(err))
	}
}
