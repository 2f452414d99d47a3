package repository

import (
	"context"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
)

// ContractorRepository defines persistence for the contractor directory.
type ContractorRepository interface {
	UpsertProfile(ctx context.Context, p contractors.Profile) (string, error)
	GetProfileByUserID(ctx context.Context, userID string) (*contractors.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*contractors.Profile, error)
	Search(ctx context.Context, f contractors.SearchFilter) ([]contractors.Profile, int, error)

	ListCategories(ctx context.Context) ([]contractors.Category, error)
	ListSkills(ctx context.Context, categoryID string) ([]contractors.Skill, error)

	ListPortfolio(ctx context.Context, contractorID string) ([]contractors.PortfolioItem, error)
	CreatePortfolioItem(ctx context.Context, item contractors.PortfolioItem) (string, error)
	UpdatePortfolioItem(ctx context.Context, item contractors.PortfolioItem) error
	DeletePortfolioItem(ctx context.Context, contractorID, itemID string) error

	ListCertifications(ctx context.Context, contractorID string) ([]contractors.Certification, error)
	CreateCertification(ctx context.Context, cert contractors.Certification) (string, error)
	DeleteCertification(ctx context.Context, contractorID, certID string) error
}
