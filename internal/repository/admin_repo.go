package repository

import (
	"context"
	"errors"
	"fmt"

	"bank-admin-service/internal/domain"
	xerrors "bank-admin-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Create(ctx context.Context, username, passwordHash, fullName, role string) (*domain.Admin, error)
	Count(ctx context.Context) (int64, error)
}

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepo(db *pgxpool.Pool) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash, full_name, role, created_at
		FROM admins
		WHERE username = $1
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.Role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin %s: %w", username, err)
	}
	return &a, nil
}

func (r *adminRepo) Create(ctx context.Context, username, passwordHash, fullName, role string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.db.QueryRow(ctx, `
		INSERT INTO admins (username, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, full_name, role, created_at
	`, username, passwordHash, fullName, role).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.Role, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &a, nil
}

func (r *adminRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}
