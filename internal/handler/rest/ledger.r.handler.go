package hrest

import (
	"context"
	"encoding/json"
	"net/http"

	"bank-admin-service/internal/domain"
	"bank-admin-service/pkg/response"

	"github.com/shopspring/decimal"
)

type LedgerService interface {
	Deposit(ctx context.Context, actor domain.Actor, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
	Withdraw(ctx context.Context, actor domain.Actor, accountNumber int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
	Transfer(ctx context.Context, actor domain.Actor, fromAccount, toAccount int64, amount decimal.Decimal, description *string) (*domain.LedgerResult, error)
}

type LedgerHandler struct {
	ledger LedgerService
}

func NewLedgerHandler(ledger LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

type moneyRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	var in moneyRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.ledger.Deposit(r.Context(), actor, number, in.Amount, in.Description)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	var in moneyRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.ledger.Withdraw(r.Context(), actor, number, in.Amount, in.Description)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

type transferRequest struct {
	ToAccount   int64           `json:"to_account" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	var in transferRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(in); err != nil {
		response.Error(w, http.StatusBadRequest, "to_account is required")
		return
	}

	res, err := h.ledger.Transfer(r.Context(), actor, number, in.ToAccount, in.Amount, in.Description)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, res)
}
