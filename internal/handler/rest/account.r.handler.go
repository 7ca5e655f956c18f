package hrest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bank-admin-service/internal/domain"
	"bank-admin-service/internal/usecase"
	"bank-admin-service/pkg/response"
	xerrors "bank-admin-service/pkg/xerrors"

	"github.com/shopspring/decimal"
)

type AccountService interface {
	OpenAccount(ctx context.Context, actor domain.Actor, req *usecase.OpenAccountRequest) (*domain.Account, error)
	GetAccount(ctx context.Context, actor domain.Actor, number int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, actor domain.Actor) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, actor domain.Actor, number int64, up *domain.AccountUpdate) (*domain.Account, error)
	DeleteAccount(ctx context.Context, actor domain.Actor, number int64) error
	SearchAccounts(ctx context.Context, actor domain.Actor, term string) ([]*domain.Account, error)
	ListTransactions(ctx context.Context, actor domain.Actor, number int64) ([]*domain.Transaction, error)
}

type AccountHandler struct {
	accounts AccountService
}

func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type openAccountRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	DateOfBirth string  `json:"date_of_birth" validate:"required"`
	Gender      string  `json:"gender"`
	Job         *string `json:"job,omitempty"`

	Type           string          `json:"type" validate:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
}

func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var in openAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(in); err != nil {
		response.Error(w, http.StatusBadRequest, "missing or malformed fields: "+err.Error())
		return
	}

	dob, err := time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	account, err := h.accounts.OpenAccount(r.Context(), actor, &usecase.OpenAccountRequest{
		User: domain.UserCreate{
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Email:       in.Email,
			Phone:       in.Phone,
			Address:     in.Address,
			DateOfBirth: dob,
			Gender:      in.Gender,
			Job:         in.Job,
		},
		Account: domain.AccountCreate{
			Type:           domain.AccountType(in.Type),
			OpeningBalance: in.OpeningBalance,
			InterestRate:   in.InterestRate,
		},
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, account)
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), actor, number)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	accounts, err := h.accounts.ListAccounts(r.Context(), actor)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, accounts)
}

type updateAccountRequest struct {
	Type         *string          `json:"type,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	var in updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	up := domain.AccountUpdate{
		IsActive:     in.IsActive,
		InterestRate: in.InterestRate,
	}
	if in.Type != nil {
		t := domain.AccountType(*in.Type)
		up.Type = &t
	}

	account, err := h.accounts.UpdateAccount(r.Context(), actor, number, &up)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), actor, number); err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "account deleted")
}

func (h *AccountHandler) SearchAccounts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		response.FromError(w, xerrors.ErrValidation)
		return
	}

	accounts, err := h.accounts.SearchAccounts(r.Context(), actor, term)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	txns, err := h.accounts.ListTransactions(r.Context(), actor, number)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, txns)
}
