package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementEntry is one transaction as seen from the statement account:
// Amount is the positive magnitude, SignedAmount carries the direction
// (positive for deposits and incoming transfers, negative for
// withdrawals and outgoing transfers), RunningBalance the cumulative
// signed sum up to and including this entry.
type StatementEntry struct {
	ID               int64           `json:"id"`
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	RecipientAccount *int64          `json:"recipient_account,omitempty"`
	Description      *string         `json:"description,omitempty"`
	Date             time.Time       `json:"date"`
	SignedAmount     decimal.Decimal `json:"signed_amount"`
	RunningBalance   decimal.Decimal `json:"running_balance"`
}

type Statement struct {
	AccountNumber    int64            `json:"account_number"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	Entries          []StatementEntry `json:"entries"`
	OpeningBalance   decimal.Decimal  `json:"opening_balance"`
	ClosingBalance   decimal.Decimal  `json:"closing_balance"`
	TotalDeposits    decimal.Decimal  `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal  `json:"total_withdrawals"`
}

// BuildStatement reconstructs the balance trajectory for an account from
// its transaction log. entries must be ordered ascending by date and
// carry signed amounts relative to the account. The store only keeps the
// current balance, so the opening balance is back-computed: it equals
// currentBalance minus the net signed movement over the window.
func BuildStatement(accountNumber int64, currentBalance decimal.Decimal, entries []StatementEntry, start, end *time.Time) Statement {
	running := decimal.Zero
	totalDeposits := decimal.Zero
	totalWithdrawals := decimal.Zero

	out := make([]StatementEntry, 0, len(entries))
	for _, e := range entries {
		running = running.Add(e.SignedAmount)
		e.RunningBalance = running
		e.Amount = e.SignedAmount.Abs()

		if e.SignedAmount.IsPositive() {
			totalDeposits = totalDeposits.Add(e.SignedAmount)
		} else if e.SignedAmount.IsNegative() {
			totalWithdrawals = totalWithdrawals.Add(e.SignedAmount.Neg())
		}
		out = append(out, e)
	}

	opening := currentBalance.Sub(running)

	// Shift the cumulative sums so each running balance is the actual
	// account balance after that transaction; the last one lands on the
	// current balance.
	for i := range out {
		out[i].RunningBalance = opening.Add(out[i].RunningBalance)
	}

	stmt := Statement{
		AccountNumber:    accountNumber,
		StartDate:        start,
		EndDate:          end,
		Entries:          out,
		OpeningBalance:   opening,
		ClosingBalance:   currentBalance,
		TotalDeposits:    totalDeposits,
		TotalWithdrawals: totalWithdrawals,
	}

	// Fall back to the actual entry span when no explicit window was given.
	if len(out) > 0 {
		if stmt.StartDate == nil {
			stmt.StartDate = &out[0].Date
		}
		if stmt.EndDate == nil {
			stmt.EndDate = &out[len(out)-1].Date
		}
	}

	return stmt
}
