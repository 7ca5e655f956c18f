package usecase

import (
	"context"
	"fmt"
	"time"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	"bank-admin-service/internal/repository"
)

const (
	analyticsCacheTTL = time.Minute

	// analyticsVersionKey is bumped after every ledger mutation so
	// cached aggregates keyed to the old version go stale immediately.
	analyticsVersionKey = "analytics:ver"
)

// AnalyticsUsecase serves cached dashboard aggregates. Strictly
// read-only with respect to the ledger.
type AnalyticsUsecase struct {
	analyticsRepo repository.AnalyticsRepository
	policy        authz.Policy
	cache         ReadCache
}

func NewAnalyticsUsecase(analyticsRepo repository.AnalyticsRepository, policy authz.Policy, cache ReadCache) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		analyticsRepo: analyticsRepo,
		policy:        policy,
		cache:         cache,
	}
}

func (uc *AnalyticsUsecase) AccountsSummary(ctx context.Context, actor domain.Actor) (*domain.AccountsSummary, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAnalytics); err != nil {
		return nil, err
	}

	key := uc.cacheKey(ctx, "analytics:summary")
	var summary domain.AccountsSummary
	if ok := uc.fromCache(ctx, key, &summary); ok {
		return &summary, nil
	}

	result, err := uc.analyticsRepo.AccountsSummary(ctx)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, key, result)
	return result, nil
}

func (uc *AnalyticsUsecase) AccountTypeDistribution(ctx context.Context, actor domain.Actor) ([]*domain.AccountTypeStats, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAnalytics); err != nil {
		return nil, err
	}

	key := uc.cacheKey(ctx, "analytics:distribution")
	var stats []*domain.AccountTypeStats
	if ok := uc.fromCache(ctx, key, &stats); ok {
		return stats, nil
	}

	result, err := uc.analyticsRepo.AccountTypeDistribution(ctx)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, key, result)
	return result, nil
}

func (uc *AnalyticsUsecase) TransactionTrends(ctx context.Context, actor domain.Actor, days int) ([]*domain.TransactionTrend, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAnalytics); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 90
	}

	key := uc.cacheKey(ctx, fmt.Sprintf("analytics:trends:%d", days))
	var trends []*domain.TransactionTrend
	if ok := uc.fromCache(ctx, key, &trends); ok {
		return trends, nil
	}

	result, err := uc.analyticsRepo.TransactionTrends(ctx, days)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, key, result)
	return result, nil
}

func (uc *AnalyticsUsecase) MonthlyGrowth(ctx context.Context, actor domain.Actor) ([]*domain.MonthlyGrowth, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAnalytics); err != nil {
		return nil, err
	}

	key := uc.cacheKey(ctx, "analytics:growth")
	var months []*domain.MonthlyGrowth
	if ok := uc.fromCache(ctx, key, &months); ok {
		return months, nil
	}

	result, err := uc.analyticsRepo.MonthlyGrowth(ctx)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, key, result)
	return result, nil
}

func (uc *AnalyticsUsecase) UserDemographics(ctx context.Context, actor domain.Actor) ([]*domain.GenderDemographics, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAnalytics); err != nil {
		return nil, err
	}

	key := uc.cacheKey(ctx, "analytics:demographics")
	var demographics []*domain.GenderDemographics
	if ok := uc.fromCache(ctx, key, &demographics); ok {
		return demographics, nil
	}

	result, err := uc.analyticsRepo.UserDemographics(ctx)
	if err != nil {
		return nil, err
	}
	uc.toCache(ctx, key, result)
	return result, nil
}

func (uc *AnalyticsUsecase) cacheKey(ctx context.Context, base string) string {
	if uc.cache == nil {
		return base
	}
	return fmt.Sprintf("%s:v%d", base, uc.cache.Version(ctx, analyticsVersionKey))
}

func (uc *AnalyticsUsecase) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if uc.cache == nil {
		return false
	}
	return uc.cache.Get(ctx, key, dest)
}

func (uc *AnalyticsUsecase) toCache(ctx context.Context, key string, val interface{}) {
	if uc.cache == nil {
		return
	}
	uc.cache.Set(ctx, key, val, analyticsCacheTTL)
}
