package usecase

import (
	"context"
	"errors"
	"fmt"

	adminpanel "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/persistence/repository/port"
)

// UsersPage is one page of the staff user listing.
type UsersPage struct {
	Users []adminpanel.UserSummary
	Total int
}

// ManageUsersUseCase covers the staff-side account operations.
type ManageUsersUseCase struct {
	Repo repository.AdminRepository
}

func NewManageUsersUseCase(repo repository.AdminRepository) *ManageUsersUseCase {
	return &ManageUsersUseCase{Repo: repo}
}

func (uc *ManageUsersUseCase) List(ctx context.Context, query string, limit, offset int) (*UsersPage, error) {
	users, total, err := uc.Repo.ListUsers(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &UsersPage{Users: users, Total: total}, nil
}

func (uc *ManageUsersUseCase) SetActive(ctx context.Context, userID string, active bool) error {
	if err := uc.Repo.SetUserActive(ctx, userID, active); err != nil {
		if errors.Is(err, adminpanel.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (uc *ManageUsersUseCase) VerifyContractor(ctx context.Context, userID string) error {
	if err := uc.Repo.VerifyContractor(ctx, userID); err != nil {
		if errors.Is(err, adminpanel.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
