package hrest

import (
	"context"
	"net/http"
	"time"

	"bank-admin-service/internal/domain"
	"bank-admin-service/pkg/response"
)

type StatementService interface {
	GetStatement(ctx context.Context, actor domain.Actor, accountNumber int64, from, to *time.Time) (*domain.Statement, error)
}

type StatementHandler struct {
	statements StatementService
}

func NewStatementHandler(statements StatementService) *StatementHandler {
	return &StatementHandler{statements: statements}
}

func (h *StatementHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	number, ok := accountNumberParam(w, r)
	if !ok {
		return
	}

	from, ok := dateQueryParam(w, r, "from")
	if !ok {
		return
	}
	to, ok := dateQueryParam(w, r, "to")
	if !ok {
		return
	}

	stmt, err := h.statements.GetStatement(r.Context(), actor, number, from, to)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stmt)
}

func dateQueryParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.Error(w, http.StatusBadRequest, name+" must be YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}
