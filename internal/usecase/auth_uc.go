package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bank-admin-service/internal/domain"
	publisher "bank-admin-service/internal/pub"
	"bank-admin-service/internal/repository"
	"bank-admin-service/pkg/id"
	xerrors "bank-admin-service/pkg/xerrors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyPrefix = "session:admin:"

// AuthEvents is the slice of the event publisher auth needs.
type AuthEvents interface {
	PublishAuthEvent(ctx context.Context, event *publisher.AuthEvent) error
}

// AuthUsecase authenticates admins and manages their server-side
// sessions in Redis behind opaque bearer tokens.
type AuthUsecase struct {
	adminRepo  repository.AdminRepository
	rdb        *redis.Client
	events     AuthEvents
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthUsecase(
	adminRepo repository.AdminRepository,
	rdb *redis.Client,
	events AuthEvents,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		adminRepo:  adminRepo,
		rdb:        rdb,
		events:     events,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (uc *AuthUsecase) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, xerrors.ErrInvalidCredentials
	}

	admin, err := uc.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			uc.logger.Warn("login failed: unknown username", zap.String("username", username))
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		uc.logger.Warn("login failed: wrong password", zap.String("username", username))
		return nil, xerrors.ErrInvalidCredentials
	}

	token, err := id.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &domain.Session{
		Token:     token,
		AdminID:   admin.ID,
		Username:  admin.Username,
		Role:      admin.Role,
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := uc.rdb.Set(ctx, sessionKeyPrefix+token, payload, uc.sessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if uc.events != nil {
		_ = uc.events.PublishAuthEvent(ctx, &publisher.AuthEvent{
			EventType: "admin.login",
			AdminID:   admin.ID,
			Username:  admin.Username,
		})
	}

	uc.logger.Info("admin logged in", zap.String("username", admin.Username))
	return session, nil
}

func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	session, err := uc.Validate(ctx, token)
	if err != nil {
		return err
	}

	if err := uc.rdb.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if uc.events != nil {
		_ = uc.events.PublishAuthEvent(ctx, &publisher.AuthEvent{
			EventType: "admin.logout",
			AdminID:   session.AdminID,
			Username:  session.Username,
		})
	}

	uc.logger.Info("admin logged out", zap.String("username", session.Username))
	return nil
}

// Validate resolves a bearer token to its session, or ErrSessionExpired.
func (uc *AuthUsecase) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, xerrors.ErrUnauthorized
	}

	val, err := uc.rdb.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, xerrors.ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// SeedInitialAdmin creates the first admin account from configuration
// when the admins table is empty. A no-op otherwise.
func (uc *AuthUsecase) SeedInitialAdmin(ctx context.Context, username, password, fullName string) error {
	count, err := uc.adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		uc.logger.Warn("admins table is empty and no seed password configured; nobody can log in")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin, err := uc.adminRepo.Create(ctx, username, string(hash), fullName, domain.RoleAdmin)
	if err != nil {
		return err
	}

	uc.logger.Info("seeded initial admin", zap.String("username", admin.Username))
	return nil
}
