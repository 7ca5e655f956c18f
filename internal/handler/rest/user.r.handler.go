package hrest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"bank-admin-service/internal/domain"
	"bank-admin-service/pkg/response"

	"github.com/go-chi/chi/v5"
)

type UserService interface {
	GetUser(ctx context.Context, actor domain.Actor, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, id int64, up *domain.UserUpdate) (*domain.User, error)
}

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	Job       *string `json:"job,omitempty"`
	Status    *bool   `json:"status,omitempty"`
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var in updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed fields: "+err.Error())
		return
	}

	user, err := h.users.UpdateUser(r.Context(), actor, id, &domain.UserUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Job:       in.Job,
		Status:    in.Status,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}
