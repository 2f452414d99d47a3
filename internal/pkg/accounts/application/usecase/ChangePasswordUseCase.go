package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

type ChangePasswordUseCase struct {
	Repo   repository.UserRepository
	Hasher *security.BcryptService
}

func NewChangePasswordUseCase(repo repository.UserRepository, hasher *security.BcryptService) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{Repo: repo, Hasher: hasher}
}

func (uc *ChangePasswordUseCase) Execute(ctx context.Context, userID, oldPassword, newPassword string) error {
	if err := accounts.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := uc.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !uc.Hasher.Compare(user.PasswordHash, oldPassword) {
		return accounts.ErrBadCredentials
	}

	hash, err := uc.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := uc.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
