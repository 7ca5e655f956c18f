package hrest

import (
	"context"
	"encoding/json"
	"net/http"

	"bank-admin-service/internal/domain"
	"bank-admin-service/internal/middleware"
	"bank-admin-service/pkg/response"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(in); err != nil {
		response.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	session, err := h.auth.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{
		Token:    session.Token,
		Username: session.Username,
		Role:     session.Role,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok || token == "" {
		response.Error(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, "logged out")
}
