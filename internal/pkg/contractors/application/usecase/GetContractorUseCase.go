package usecase

import (
	"context"
	"errors"
	"fmt"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/port"
)

// ContractorDetail is the public contractor page: profile plus showcase.
type ContractorDetail struct {
	Profile        *contractors.Profile
	Portfolio      []contractors.PortfolioItem
	Certifications []contractors.Certification
}

type GetContractorUseCase struct {
	Repo repository.ContractorRepository
}

func NewGetContractorUseCase(repo repository.ContractorRepository) *GetContractorUseCase {
	return &GetContractorUseCase{Repo: repo}
}

func (uc *GetContractorUseCase) Execute(ctx context.Context, contractorID string) (*ContractorDetail, error) {
	profile, err := uc.Repo.GetProfileByID(ctx, contractorID)
	if err != nil {
		if errors.Is(err, contractors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	portfolio, err := uc.Repo.ListPortfolio(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	certs, err := uc.Repo.ListCertifications(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &ContractorDetail{Profile: profile, Portfolio: portfolio, Certifications: certs}, nil
}
