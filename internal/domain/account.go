package domain

import (
	"time"

	"github.com/shopspring/decimal"

	xerrors "bank-admin-service/pkg/xerrors"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

func (t AccountType) Valid() bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// Account is a customer account. Balance is a fixed-point decimal with
// two fractional digits; it must never go negative through a withdrawal
// or transfer-out.
type Account struct {
	Number       int64           `json:"number"`
	UserID       int64           `json:"user_id"`
	Type         AccountType     `json:"type"`
	Balance      decimal.Decimal `json:"balance"`
	IsActive     bool            `json:"is_active"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	CreatedAt    time.Time       `json:"created_at"`

	// Joined holder info for admin listings.
	HolderName  string `json:"holder_name,omitempty"`
	HolderEmail string `json:"holder_email,omitempty"`
}

type AccountCreate struct {
	UserID         int64
	Type           AccountType
	OpeningBalance decimal.Decimal
	InterestRate   decimal.Decimal
}

type AccountUpdate struct {
	Type         *AccountType
	IsActive     *bool
	InterestRate *decimal.Decimal
}

// Validate applies the registry field rules: valid type enum,
// non-negative opening balance, interest rate within [0, 100].
func (c *AccountCreate) Validate() error {
	if !c.Type.Valid() {
		return xerrors.ErrValidation
	}
	if c.OpeningBalance.IsNegative() {
		return xerrors.ErrValidation
	}
	return validateInterestRate(c.InterestRate)
}

func (u *AccountUpdate) Validate() error {
	if u.Type != nil && !u.Type.Valid() {
		return xerrors.ErrValidation
	}
	if u.InterestRate != nil {
		return validateInterestRate(*u.InterestRate)
	}
	return nil
}

var maxInterestRate = decimal.NewFromInt(100)

func validateInterestRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(maxInterestRate) {
		return xerrors.ErrValidation
	}
	return nil
}
