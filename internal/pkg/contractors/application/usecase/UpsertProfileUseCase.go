package usecase

import (
	"context"
	"fmt"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/port"
)

// UpsertProfileUseCase creates or replaces the caller's contractor profile.
// Rating aggregates and completion counters are never writable here.
type UpsertProfileUseCase struct {
	Repo repository.ContractorRepository
}

func NewUpsertProfileUseCase(repo repository.ContractorRepository) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{Repo: repo}
}

func (uc *UpsertProfileUseCase) Execute(ctx context.Context, in contractors.Profile) (*contractors.Profile, error) {
	p, err := contractors.NewProfile(in)
	if err != nil {
		return nil, err
	}
	id, err := uc.Repo.UpsertProfile(ctx, *p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	stored, err := uc.Repo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return stored, nil
}
