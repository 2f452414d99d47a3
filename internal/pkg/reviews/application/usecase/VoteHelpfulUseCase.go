package usecase

import (
	"context"
	"errors"
	"fmt"

	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/persistence/repository/port"
)

// VoteHelpfulUseCase records one helpful/not-helpful vote per user per review.
// Re-voting overwrites the previous vote.
type VoteHelpfulUseCase struct {
	Repo repository.ReviewRepository
}

func NewVoteHelpfulUseCase(repo repository.ReviewRepository) *VoteHelpfulUseCase {
	return &VoteHelpfulUseCase{Repo: repo}
}

func (uc *VoteHelpfulUseCase) Execute(ctx context.Context, reviewID, userID string, isHelpful bool) error {
	review, err := uc.Repo.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if review.ClientID == userID {
		return reviews.ErrForbidden
	}

	if err := uc.Repo.VoteHelpful(ctx, reviews.HelpfulVote{ReviewID: reviewID, UserID: userID, IsHelpful: isHelpful}); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
