package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is one append-only log entry. Amount is always a positive
// magnitude; a TRANSFER is recorded once, attributed to the source
// account and carrying the recipient reference.
type Transaction struct {
	ID               int64           `json:"id"`
	AccountID        int64           `json:"account_id"`
	Type             TransactionType `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	RecipientAccount *int64          `json:"recipient_account,omitempty"`
	Description      *string         `json:"description,omitempty"`
	Reference        string          `json:"reference"`
	Date             time.Time       `json:"date"`
}

// LedgerResult is what a successful money-movement operation returns:
// the appended log entry plus the post-mutation balance of the source
// account.
type LedgerResult struct {
	Transaction Transaction     `json:"transaction"`
	Balance     decimal.Decimal `json:"balance"`
}
