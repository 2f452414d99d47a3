package usecase

import (
	"context"
	"fmt"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/port"
)

// SearchResult is one page of the contractor directory.
type SearchResult struct {
	Contractors []contractors.Profile
	Total       int
}

type SearchContractorsUseCase struct {
	Repo repository.ContractorRepository
}

func NewSearchContractorsUseCase(repo repository.ContractorRepository) *SearchContractorsUseCase {
	return &SearchContractorsUseCase{Repo: repo}
}

func (uc *SearchContractorsUseCase) Execute(ctx context.Context, f contractors.SearchFilter) (*SearchResult, error) {
	list, total, err := uc.Repo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []contractors.Profile{}
	}
	return &SearchResult{Contractors: list, Total: total}, nil
}
