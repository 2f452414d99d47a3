package usecase

import (
	"context"
	"fmt"

	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/persistence/repository/port"
)

// ReviewsPage is one page of a contractor's public reviews.
type ReviewsPage struct {
	Reviews []reviews.Review
	Total   int
}

// ListReviewsUseCase pages a contractor's public reviews, featured first.
type ListReviewsUseCase struct {
	Repo repository.ReviewRepository
}

func NewListReviewsUseCase(repo repository.ReviewRepository) *ListReviewsUseCase {
	return &ListReviewsUseCase{Repo: repo}
}

func (uc *ListReviewsUseCase) Execute(ctx context.Context, contractorID string, limit, offset int) (*ReviewsPage, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	list, total, err := uc.Repo.ListByContractor(ctx, contractorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []reviews.Review{}
	}
	return &ReviewsPage{Reviews: list, Total: total}, nil
}
