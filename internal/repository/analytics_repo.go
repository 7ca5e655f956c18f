package repository

import (
	"context"
	"fmt"
	"time"

	"bank-admin-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository serves the dashboard with read-only SQL aggregates.
// Results are plain floats; nothing here writes to the ledger.
type AnalyticsRepository interface {
	AccountsSummary(ctx context.Context) (*domain.AccountsSummary, error)
	AccountTypeDistribution(ctx context.Context) ([]*domain.AccountTypeStats, error)
	TransactionTrends(ctx context.Context, days int) ([]*domain.TransactionTrend, error)
	MonthlyGrowth(ctx context.Context) ([]*domain.MonthlyGrowth, error)
	UserDemographics(ctx context.Context) ([]*domain.GenderDemographics, error)
}

type analyticsRepo struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepo(db *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) AccountsSummary(ctx context.Context) (*domain.AccountsSummary, error) {
	var s domain.AccountsSummary
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(balance), 0)::float8,
			COALESCE(AVG(balance), 0)::float8,
			COALESCE(MIN(balance), 0)::float8,
			COALESCE(MAX(balance), 0)::float8,
			COUNT(*) FILTER (WHERE type = 'savings'),
			COUNT(*) FILTER (WHERE type = 'checking'),
			COALESCE(AVG(interest_rate) FILTER (WHERE type = 'savings'), 0)::float8,
			COALESCE(AVG(interest_rate) FILTER (WHERE type = 'checking'), 0)::float8,
			COUNT(*) FILTER (WHERE status = false)
		FROM accounts
	`).Scan(
		&s.TotalAccounts, &s.TotalBalance, &s.AvgBalance, &s.MinBalance, &s.MaxBalance,
		&s.SavingsCount, &s.CheckingCount, &s.AvgSavingsRate, &s.AvgCheckingRate, &s.InactiveAccounts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts summary: %w", err)
	}
	return &s, nil
}

func (r *analyticsRepo) AccountTypeDistribution(ctx context.Context) ([]*domain.AccountTypeStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			type,
			COUNT(*),
			COALESCE(AVG(balance), 0)::float8,
			COALESCE(MIN(balance), 0)::float8,
			COALESCE(MAX(balance), 0)::float8,
			COALESCE(AVG(interest_rate), 0)::float8,
			COUNT(*) FILTER (WHERE status = true),
			COUNT(*) FILTER (WHERE status = false)
		FROM accounts
		GROUP BY type
		ORDER BY type
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query account type distribution: %w", err)
	}
	defer rows.Close()

	var stats []*domain.AccountTypeStats
	for rows.Next() {
		var s domain.AccountTypeStats
		if err := rows.Scan(
			&s.Type, &s.Count, &s.AvgBalance, &s.MinBalance, &s.MaxBalance,
			&s.AvgInterestRate, &s.ActiveAccounts, &s.InactiveAccounts,
		); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}

func (r *analyticsRepo) TransactionTrends(ctx context.Context, days int) ([]*domain.TransactionTrend, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			date_trunc('day', date)::date,
			type,
			COUNT(*),
			SUM(amount)::float8,
			AVG(amount)::float8,
			MIN(amount)::float8,
			MAX(amount)::float8
		FROM transactions
		WHERE date >= CURRENT_DATE - $1 * INTERVAL '1 day'
		GROUP BY 1, 2
		ORDER BY 1, 2
	`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction trends: %w", err)
	}
	defer rows.Close()

	var trends []*domain.TransactionTrend
	for rows.Next() {
		var t domain.TransactionTrend
		if err := rows.Scan(
			&t.Date, &t.Type, &t.TransactionCount,
			&t.TotalAmount, &t.AvgAmount, &t.MinAmount, &t.MaxAmount,
		); err != nil {
			return nil, err
		}
		trends = append(trends, &t)
	}
	return trends, rows.Err()
}

func (r *analyticsRepo) MonthlyGrowth(ctx context.Context) ([]*domain.MonthlyGrowth, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			date_trunc('month', date) AS month,
			COUNT(DISTINCT account_id),
			COUNT(*),
			SUM(amount)::float8
		FROM transactions
		WHERE date >= CURRENT_DATE - INTERVAL '12 months'
		GROUP BY 1
		ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly growth: %w", err)
	}
	defer rows.Close()

	var months []*domain.MonthlyGrowth
	for rows.Next() {
		var m domain.MonthlyGrowth
		var month time.Time
		if err := rows.Scan(&month, &m.ActiveAccounts, &m.TransactionCount, &m.TotalVolume); err != nil {
			return nil, err
		}
		m.Month = month
		months = append(months, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Month-over-month volume growth; first month has no baseline.
	for i := 1; i < len(months); i++ {
		prev := months[i-1].TotalVolume
		if prev != 0 {
			pct := (months[i].TotalVolume - prev) / prev * 100
			months[i].GrowthPct = &pct
		}
	}
	return months, nil
}

func (r *analyticsRepo) UserDemographics(ctx context.Context) ([]*domain.GenderDemographics, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			gender,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = true),
			COUNT(*) FILTER (WHERE status = false),
			COALESCE(AVG(date_part('year', age(date_of_birth))), 0)::float8,
			COALESCE(MIN(date_part('year', age(date_of_birth))), 0)::bigint,
			COALESCE(MAX(date_part('year', age(date_of_birth))), 0)::bigint,
			COUNT(DISTINCT job)
		FROM users
		WHERE gender IS NOT NULL AND gender <> ''
		GROUP BY gender
		ORDER BY gender
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user demographics: %w", err)
	}
	defer rows.Close()

	var demographics []*domain.GenderDemographics
	for rows.Next() {
		var d domain.GenderDemographics
		if err := rows.Scan(
			&d.Gender, &d.Count, &d.ActiveUsers, &d.InactiveUsers,
			&d.AvgAge, &d.MinAge, &d.MaxAge, &d.UniqueJobs,
		); err != nil {
			return nil, err
		}
		demographics = append(demographics, &d)
	}
	return demographics, rows.Err()
}
