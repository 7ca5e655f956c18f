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

type UserRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, uc *domain.UserCreate) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, up *domain.UserUpdate) (*domain.User, error)
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateTx(ctx context.Context, tx pgx.Tx, uc *domain.UserCreate) (*domain.User, error) {
	var u domain.User
	err := tx.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, phone, address, date_of_birth, gender, job)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, first_name, last_name, email, phone, address, date_of_birth, gender, job, status, created_at
	`, uc.FirstName, uc.LastName, uc.Email, uc.Phone, uc.Address, uc.DateOfBirth, uc.Gender, uc.Job).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Address,
		&u.DateOfBirth, &u.Gender, &u.Job, &u.Status, &u.CreatedAt,
	)
	if err != nil {
		if xerrors.IsUniqueViolation(err) {
			return nil, xerrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, address, date_of_birth, gender, job, status, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.Address,
		&u.DateOfBirth, &u.Gender, &u.Job, &u.Status, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, id int64, up *domain.UserUpdate) (*domain.User, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name  = COALESCE($3, last_name),
		    email      = COALESCE($4, email),
		    phone      = COALESCE($5, phone),
		    address    = COALESCE($6, address),
		    job        = COALESCE($7, job),
		    status     = COALESCE($8, status)
		WHERE id = $1
	`, id, up.FirstName, up.LastName, up.Email, up.Phone, up.Address, up.Job, up.Status)
	if err != nil {
		if xerrors.IsUniqueViolation(err) {
			return nil, xerrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, xerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}
