package hrest

import (
	"net/http"
	"strconv"

	"bank-admin-service/internal/domain"
	"bank-admin-service/internal/middleware"
	"bank-admin-service/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// actorFrom pulls the authenticated admin out of the request context.
// The auth middleware guarantees it is present on guarded routes.
func actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthorized")
	}
	return actor, ok
}

func accountNumberParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "number")
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid account number")
		return 0, false
	}
	return number, true
}
