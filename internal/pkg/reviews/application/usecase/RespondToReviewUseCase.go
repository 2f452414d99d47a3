package usecase

import (
	"context"
	"errors"
	"fmt"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/persistence/repository/port"
)

// RespondToReviewUseCase posts the reviewed contractor's single public reply.
// The reviewing client is notified and the reply goes through content
// scanning.
type RespondToReviewUseCase struct {
	Repo  repository.ReviewRepository
	Queue qport.Client
}

func NewRespondToReviewUseCase(repo repository.ReviewRepository, q qport.Client) *RespondToReviewUseCase {
	return &RespondToReviewUseCase{Repo: repo, Queue: q}
}

func (uc *RespondToReviewUseCase) Execute(ctx context.Context, reviewID, userID, text string) (*reviews.Response, error) {
	response, err := reviews.NewResponse(reviews.Response{ReviewID: reviewID, ContractorID: userID, ResponseText: text})
	if err != nil {
		return nil, err
	}

	review, err := uc.Repo.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	contractorID, err := uc.Repo.ResolveContractor(ctx, userID)
	if err != nil || contractorID != review.ContractorID {
		return nil, reviews.ErrForbidden
	}

	id, err := uc.Repo.CreateResponse(ctx, *response)
	if err != nil {
		if errors.Is(err, reviews.ErrAlreadyAnswered) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	response.ID = id

	notificationtask.EnqueueDeliver(ctx, uc.Queue, notificationtask.DeliverNotificationTaskPayload{
		UserID:      review.ClientID,
		Kind:        notifications.KindReviewResponse,
		Title:       "Response to your review",
		Message:     "The contractor replied to your review.",
		RelatedKind: "review",
		RelatedID:   &reviewID,
	})
	moderationtask.EnqueueScan(ctx, uc.Queue, "review_response", id)

	return response, nil
}
