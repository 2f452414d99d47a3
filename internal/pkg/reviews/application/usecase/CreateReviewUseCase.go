package usecase

import (
	"context"
	"errors"
	"fmt"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/persistence/repository/port"
)

// CreateReviewUseCase submits a review. The rating is folded into the
// contractor's aggregate atomically, the verified badge is granted when the
// pair completed the referenced project, the contractor is notified, and the
// text goes through content scanning.
type CreateReviewUseCase struct {
	Repo  repository.ReviewRepository
	Queue qport.Client
}

func NewCreateReviewUseCase(repo repository.ReviewRepository, q qport.Client) *CreateReviewUseCase {
	return &CreateReviewUseCase{Repo: repo, Queue: q}
}

func (uc *CreateReviewUseCase) Execute(ctx context.Context, in reviews.Review) (*reviews.Review, error) {
	review, err := reviews.NewReview(in)
	if err != nil {
		return nil, err
	}

	// Reviewing your own contractor profile is blocked outright.
	if ownProfile, err := uc.Repo.ResolveContractor(ctx, review.ClientID); err == nil && ownProfile == review.ContractorID {
		return nil, reviews.ErrSelfReview
	}

	review.IsVerified = false
	if review.ProjectID != nil {
		verified, err := uc.Repo.HasCompletedProject(ctx, *review.ProjectID, review.ClientID, review.ContractorID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		review.IsVerified = verified
	}

	id, err := uc.Repo.CreateReview(ctx, *review)
	if err != nil {
		if errors.Is(err, reviews.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	review.ID = id

	if contractorUserID, err := uc.Repo.ContractorUser(ctx, review.ContractorID); err == nil {
		notificationtask.EnqueueDeliver(ctx, uc.Queue, notificationtask.DeliverNotificationTaskPayload{
			UserID:      contractorUserID,
			Kind:        notifications.KindNewReview,
			Title:       "New review",
			Message:     fmt.Sprintf("You received a %d-star review.", review.Rating),
			RelatedKind: "review",
			RelatedID:   &id,
		})
	} else {
		logger.Warningf("notify contractor %s of review: %v", review.ContractorID, err)
	}
	moderationtask.EnqueueScan(ctx, uc.Queue, "review", id)

	return review, nil
}
