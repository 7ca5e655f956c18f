package middleware

import (
	"context"
	"net/http"
	"strings"

	"bank-admin-service/internal/domain"
	"bank-admin-service/pkg/response"

	"go.uber.org/zap"
)

// SessionValidator resolves a bearer token to a live session.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*domain.Session, error)
}

// AuthMiddleware guards admin routes: it extracts the bearer token,
// validates the session and places the acting admin in the request
// context. The core layers below never touch session state themselves.
type AuthMiddleware struct {
	sessions SessionValidator
	logger   *zap.Logger
}

func NewAuthMiddleware(sessions SessionValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, logger: logger}
}

func (am *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			response.Error(w, http.StatusUnauthorized, "missing auth token")
			return
		}

		session, err := am.sessions.Validate(r.Context(), token)
		if err != nil {
			am.logger.Warn("session validation failed", zap.Error(err))
			response.Error(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		actor := domain.Actor{
			AdminID:  session.AdminID,
			Username: session.Username,
			Role:     session.Role,
		}

		ctx := context.WithValue(r.Context(), ContextActor, actor)
		ctx = context.WithValue(ctx, ContextToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
