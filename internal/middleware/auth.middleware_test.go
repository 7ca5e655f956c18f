package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bank-admin-service/internal/domain"
	xerrors "bank-admin-service/pkg/xerrors"
)

type mockSessions struct {
	validateFn func(ctx context.Context, token string) (*domain.Session, error)
}

func (m *mockSessions) Validate(ctx context.Context, token string) (*domain.Session, error) {
	return m.validateFn(ctx, token)
}

func TestRequireSessionInjectsActor(t *testing.T) {
	sessions := &mockSessions{
		validateFn: func(_ context.Context, token string) (*domain.Session, error) {
			assert.Equal(t, "tok123", token)
			return &domain.Session{Token: token, AdminID: 5, Username: "root", Role: domain.RoleAdmin}, nil
		},
	}
	am := NewAuthMiddleware(sessions, zap.NewNop())

	var gotActor domain.Actor
	var gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		gotActor = actor
		gotToken, _ = GetToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/accounts", nil)
	req.Header.Set("Authorization", "Bearer tok123")
	rec := httptest.NewRecorder()
	am.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Actor{AdminID: 5, Username: "root", Role: domain.RoleAdmin}, gotActor)
	assert.Equal(t, "tok123", gotToken)
}

func TestRequireSessionRejectsMissingToken(t *testing.T) {
	am := NewAuthMiddleware(&mockSessions{}, zap.NewNop())

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/accounts", nil)
	rec := httptest.NewRecorder()
	am.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionRejectsExpiredSession(t *testing.T) {
	sessions := &mockSessions{
		validateFn: func(context.Context, string) (*domain.Session, error) {
			return nil, xerrors.ErrSessionExpired
		},
	}
	am := NewAuthMiddleware(sessions, zap.NewNop())

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/accounts", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	am.RequireSession(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
