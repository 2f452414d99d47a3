package usecase

import (
	"context"
	"errors"
	"fmt"

	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

// ManageAddressesUseCase covers the saved-address CRUD for one user. Every
// operation is scoped by the owner id so users cannot touch each other's
// addresses.
type ManageAddressesUseCase struct {
	Repo repository.UserRepository
}

func NewManageAddressesUseCase(repo repository.UserRepository) *ManageAddressesUseCase {
	return &ManageAddressesUseCase{Repo: repo}
}

func (uc *ManageAddressesUseCase) List(ctx context.Context, userID string) ([]accounts.Address, error) {
	out, err := uc.Repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if out == nil {
		out = []accounts.Address{}
	}
	return out, nil
}

func (uc *ManageAddressesUseCase) Create(ctx context.Context, a accounts.Address) (*accounts.Address, error) {
	addr, err := accounts.NewAddress(a)
	if err != nil {
		return nil, err
	}
	id, err := uc.Repo.CreateAddress(ctx, *addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	addr.ID = id
	return addr, nil
}

func (uc *ManageAddressesUseCase) Update(ctx context.Context, a accounts.Address) (*accounts.Address, error) {
	addr, err := accounts.NewAddress(a)
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.UpdateAddress(ctx, *addr); err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return addr, nil
}

func (uc *ManageAddressesUseCase) Delete(ctx context.Context, userID, addressID string) error {
	err := uc.Repo.DeleteAddress(ctx, userID, addressID)
	if err != nil && !errors.Is(err, accounts.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return err
}
