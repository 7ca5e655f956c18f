package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	xerrors "bank-admin-service/pkg/xerrors"
)

type mockAnalyticsRepo struct {
	accountsSummaryFn         func(ctx context.Context) (*domain.AccountsSummary, error)
	accountTypeDistributionFn func(ctx context.Context) ([]*domain.AccountTypeStats, error)
	transactionTrendsFn       func(ctx context.Context, days int) ([]*domain.TransactionTrend, error)
	monthlyGrowthFn           func(ctx context.Context) ([]*domain.MonthlyGrowth, error)
	userDemographicsFn        func(ctx context.Context) ([]*domain.GenderDemographics, error)
}

func (m *mockAnalyticsRepo) AccountsSummary(ctx context.Context) (*domain.AccountsSummary, error) {
	if m.accountsSummaryFn != nil {
		return m.accountsSummaryFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAnalyticsRepo) AccountTypeDistribution(ctx context.Context) ([]*domain.AccountTypeStats, error) {
	if m.accountTypeDistributionFn != nil {
		return m.accountTypeDistributionFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAnalyticsRepo) TransactionTrends(ctx context.Context, days int) ([]*domain.TransactionTrend, error) {
	if m.transactionTrendsFn != nil {
		return m.transactionTrendsFn(ctx, days)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAnalyticsRepo) MonthlyGrowth(ctx context.Context) ([]*domain.MonthlyGrowth, error) {
	if m.monthlyGrowthFn != nil {
		return m.monthlyGrowthFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAnalyticsRepo) UserDemographics(ctx context.Context) ([]*domain.GenderDemographics, error) {
	if m.userDemographicsFn != nil {
		return m.userDemographicsFn(ctx)
	}
	return nil, fmt.Errorf("not configured")
}

func TestUserDemographicsReturnsPerGenderRows(t *testing.T) {
	repo := &mockAnalyticsRepo{
		userDemographicsFn: func(context.Context) ([]*domain.GenderDemographics, error) {
			return []*domain.GenderDemographics{
				{Gender: "female", Count: 12, ActiveUsers: 10, InactiveUsers: 2, AvgAge: 41.5, MinAge: 19, MaxAge: 70, UniqueJobs: 8},
				{Gender: "male", Count: 9, ActiveUsers: 9, AvgAge: 38.0, MinAge: 22, MaxAge: 61, UniqueJobs: 7},
			}, nil
		},
	}
	uc := NewAnalyticsUsecase(repo, authz.NewRolePolicy(), nil)

	rows, err := uc.UserDemographics(context.Background(), adminActor)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "female", rows[0].Gender)
	assert.Equal(t, int64(12), rows[0].Count)
	assert.Equal(t, int64(2), rows[0].InactiveUsers)
	assert.Equal(t, int64(8), rows[0].UniqueJobs)
}

func TestUserDemographicsAllowsAuditor(t *testing.T) {
	repo := &mockAnalyticsRepo{
		userDemographicsFn: func(context.Context) ([]*domain.GenderDemographics, error) {
			return nil, nil
		},
	}
	uc := NewAnalyticsUsecase(repo, authz.NewRolePolicy(), nil)

	_, err := uc.UserDemographics(context.Background(), auditorActor)
	assert.NoError(t, err)
}

func TestUserDemographicsRejectsUnknownRole(t *testing.T) {
	uc := NewAnalyticsUsecase(&mockAnalyticsRepo{}, authz.NewRolePolicy(), nil)

	actor := domain.Actor{AdminID: 9, Username: "ghost", Role: "intern"}
	_, err := uc.UserDemographics(context.Background(), actor)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
}

func TestUserDemographicsCachedUntilLedgerMutates(t *testing.T) {
	repoCalls := 0
	repo := &mockAnalyticsRepo{
		userDemographicsFn: func(context.Context) ([]*domain.GenderDemographics, error) {
			repoCalls++
			return []*domain.GenderDemographics{{Gender: "female", Count: 1}}, nil
		},
	}
	store := newMemoryCache()
	uc := NewAnalyticsUsecase(repo, authz.NewRolePolicy(), store)

	_, err := uc.UserDemographics(context.Background(), adminActor)
	require.NoError(t, err)
	_, err = uc.UserDemographics(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Equal(t, 1, repoCalls)

	store.Bump(context.Background(), analyticsVersionKey)

	_, err = uc.UserDemographics(context.Background(), adminActor)
	require.NoError(t, err)
	assert.Equal(t, 2, repoCalls)
}
