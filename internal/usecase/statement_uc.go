package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	"bank-admin-service/internal/repository"
	xerrors "bank-admin-service/pkg/xerrors"
)

// ReadCache is the slice of the cache layer the read-model usecases
// need: versioned best-effort JSON entries.
type ReadCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration)
	Bump(ctx context.Context, key string)
	Version(ctx context.Context, key string) int64
}

const statementCacheTTL = time.Minute

type StatementUsecase struct {
	statementRepo repository.StatementRepository
	accountRepo   repository.AccountRepository
	policy        authz.Policy
	cache         ReadCache
}

func NewStatementUsecase(
	statementRepo repository.StatementRepository,
	accountRepo repository.AccountRepository,
	policy authz.Policy,
	cache ReadCache,
) *StatementUsecase {
	return &StatementUsecase{
		statementRepo: statementRepo,
		accountRepo:   accountRepo,
		policy:        policy,
		cache:         cache,
	}
}

// GetStatement reconstructs the balance trajectory of an account over an
// optional, inclusive date window.
func (uc *StatementUsecase) GetStatement(ctx context.Context, actor domain.Actor, accountNumber int64, from, to *time.Time) (*domain.Statement, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAccounts); err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, xerrors.ErrInvalidDateRange
	}

	var cacheKey string
	if uc.cache != nil {
		version := uc.cache.Version(ctx, statementVersionKey(accountNumber))
		cacheKey = statementCacheKey(accountNumber, version, from, to)
		var stmt domain.Statement
		if uc.cache.Get(ctx, cacheKey, &stmt) {
			return &stmt, nil
		}
	}

	account, err := uc.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	// The window upper bound is a calendar date; stretch it to the end
	// of that day so same-day transactions stay inside the bound.
	queryTo := to
	if to != nil {
		end := endOfDay(*to)
		queryTo = &end
	}

	entries, err := uc.statementRepo.ListEntries(ctx, accountNumber, from, queryTo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statement entries: %w", err)
	}

	stmt := domain.BuildStatement(accountNumber, account.Balance, entries, from, to)

	if uc.cache != nil {
		uc.cache.Set(ctx, cacheKey, stmt, statementCacheTTL)
	}
	return &stmt, nil
}

// statementVersionKey is the per-account counter bumped after every
// ledger mutation; stale statement entries are keyed to old versions
// and simply expire.
func statementVersionKey(accountNumber int64) string {
	return fmt.Sprintf("statement:ver:account:%d", accountNumber)
}

func statementCacheKey(accountNumber, version int64, from, to *time.Time) string {
	// "-" marks an absent bound; an explicit epoch date must not
	// collide with "no bound".
	f, t := "-", "-"
	if from != nil {
		f = strconv.FormatInt(from.Unix(), 10)
	}
	if to != nil {
		t = strconv.FormatInt(to.Unix(), 10)
	}
	return fmt.Sprintf("statement:account:%d:v%d:%s:%s", accountNumber, version, f, t)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
