package usecase

import (
	"context"

	"bank-admin-service/internal/authz"
	"bank-admin-service/internal/domain"
	"bank-admin-service/internal/repository"
)

type UserUsecase struct {
	userRepo repository.UserRepository
	policy   authz.Policy
}

func NewUserUsecase(userRepo repository.UserRepository, policy authz.Policy) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, policy: policy}
}

func (uc *UserUsecase) GetUser(ctx context.Context, actor domain.Actor, id int64) (*domain.User, error) {
	if err := uc.policy.Can(actor, domain.ActionViewAccounts); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUsecase) UpdateUser(ctx context.Context, actor domain.Actor, id int64, up *domain.UserUpdate) (*domain.User, error) {
	if err := uc.policy.Can(actor, domain.ActionManageAccounts); err != nil {
		return nil, err
	}
	return uc.userRepo.Update(ctx, id, up)
}
