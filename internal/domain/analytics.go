package domain

import "time"

// Analytics views are read-only aggregates for the dashboard. Floats are
// acceptable here; these values never feed back into ledger mutation.

type AccountsSummary struct {
	TotalAccounts    int64   `json:"total_accounts"`
	TotalBalance     float64 `json:"total_balance"`
	AvgBalance       float64 `json:"avg_balance"`
	MinBalance       float64 `json:"min_balance"`
	MaxBalance       float64 `json:"max_balance"`
	SavingsCount     int64   `json:"savings_count"`
	CheckingCount    int64   `json:"checking_count"`
	AvgSavingsRate   float64 `json:"avg_savings_rate"`
	AvgCheckingRate  float64 `json:"avg_checking_rate"`
	InactiveAccounts int64   `json:"inactive_accounts"`
}

type AccountTypeStats struct {
	Type             AccountType `json:"type"`
	Count            int64       `json:"count"`
	AvgBalance       float64     `json:"avg_balance"`
	MinBalance       float64     `json:"min_balance"`
	MaxBalance       float64     `json:"max_balance"`
	AvgInterestRate  float64     `json:"avg_interest_rate"`
	ActiveAccounts   int64       `json:"active_accounts"`
	InactiveAccounts int64       `json:"inactive_accounts"`
}

type TransactionTrend struct {
	Date             time.Time       `json:"date"`
	Type             TransactionType `json:"type"`
	TransactionCount int64           `json:"transaction_count"`
	TotalAmount      float64         `json:"total_amount"`
	AvgAmount        float64         `json:"avg_amount"`
	MinAmount        float64         `json:"min_amount"`
	MaxAmount        float64         `json:"max_amount"`
}

// GenderDemographics aggregates account holders by gender: headcount,
// activity split, age spread and occupational variety. Rows with no
// recorded gender are excluded.
type GenderDemographics struct {
	Gender        string  `json:"gender"`
	Count         int64   `json:"count"`
	ActiveUsers   int64   `json:"active_users"`
	InactiveUsers int64   `json:"inactive_users"`
	AvgAge        float64 `json:"avg_age"`
	MinAge        int64   `json:"min_age"`
	MaxAge        int64   `json:"max_age"`
	UniqueJobs    int64   `json:"unique_jobs"`
}

type MonthlyGrowth struct {
	Month            time.Time `json:"month"`
	ActiveAccounts   int64     `json:"active_accounts"`
	TransactionCount int64     `json:"transaction_count"`
	TotalVolume      float64   `json:"total_volume"`
	GrowthPct        *float64  `json:"growth_pct,omitempty"`
}
