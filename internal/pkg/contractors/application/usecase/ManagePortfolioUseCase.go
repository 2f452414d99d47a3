package usecase

import (
	"context"
	"errors"
	"fmt"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/port"
)

// ManagePortfolioUseCase covers portfolio CRUD for the calling contractor.
// Every operation resolves the profile from the user id so one contractor
// can never edit another's showcase.
type ManagePortfolioUseCase struct {
	Repo repository.ContractorRepository
}

func NewManagePortfolioUseCase(repo repository.ContractorRepository) *ManagePortfolioUseCase {
	return &ManagePortfolioUseCase{Repo: repo}
}

func (uc *ManagePortfolioUseCase) profileID(ctx context.Context, userID string) (string, error) {
	p, err := uc.Repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, contractors.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return p.ID, nil
}

func (uc *ManagePortfolioUseCase) List(ctx context.Context, userID string) ([]contractors.PortfolioItem, error) {
	id, err := uc.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := uc.Repo.ListPortfolio(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if items == nil {
		items = []contractors.PortfolioItem{}
	}
	return items, nil
}

func (uc *ManagePortfolioUseCase) Create(ctx context.Context, userID string, item contractors.PortfolioItem) (*contractors.PortfolioItem, error) {
	id, err := uc.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}
	item.ContractorID = id

	validated, err := contractors.NewPortfolioItem(item)
	if err != nil {
		return nil, err
	}
	itemID, err := uc.Repo.CreatePortfolioItem(ctx, *validated)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	validated.ID = itemID
	return validated, nil
}

func (uc *ManagePortfolioUseCase) Update(ctx context.Context, userID string, item contractors.PortfolioItem) (*contractors.PortfolioItem, error) {
	id, err := uc.profileID(ctx, userID)
	if err != nil {
		return nil, err
	}
	item.ContractorID = id

	validated, err := contractors.NewPortfolioItem(item)
	if err != nil {
		return nil, err
	}
	if err := uc.Repo.UpdatePortfolioItem(ctx, *validated); err != nil {
		if errors.Is(err, contractors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return validated, nil
}

func (uc *ManagePortfolioUseCase) Delete(ctx context.Context, userID, itemID string) error {
	id, err := uc.profileID(ctx, userID)
	if err != nil {
		return err
	}
	err = uc.Repo.DeletePortfolioItem(ctx, id, itemID)
	if err != nil && !errors.Is(err, contractors.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return err
}
