package usecase

import (
	"context"
	"errors"
	"fmt"

	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

// Profile bundles the account with its marketplace activity summary.
type Profile struct {
	User  *accounts.User
	Stats *accounts.ProfileStats
}

type GetProfileUseCase struct {
	Repo repository.UserRepository
}

func NewGetProfileUseCase(repo repository.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{Repo: repo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*Profile, error) {
	user, err := uc.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	stats, err := uc.Repo.ProfileStats(ctx, userID)
	if err != nil && !errors.Is(err, accounts.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if stats == nil {
		stats = &accounts.ProfileStats{}
	}
	return &Profile{User: user, Stats: stats}, nil
}
