package response

import (
	"encoding/json"
	"errors"
	"net/http"

	xerrors "bank-admin-service/pkg/xerrors"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func Error(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		Status:  "error",
		Message: msg,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// FromError maps domain errors to HTTP status codes. Unknown errors
// are reported as a generic 500 so internals never leak to clients.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, xerrors.ErrForbidden):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, xerrors.ErrUnauthorized),
		errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrSessionExpired):
		Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, xerrors.ErrDuplicateUser):
		Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, xerrors.ErrInvalidAmount),
		errors.Is(err, xerrors.ErrInsufficientFunds),
		errors.Is(err, xerrors.ErrSameAccount),
		errors.Is(err, xerrors.ErrNonZeroBalance),
		errors.Is(err, xerrors.ErrInvalidDateRange),
		errors.Is(err, xerrors.ErrValidation),
		errors.Is(err, xerrors.ErrInvalidRequest):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
