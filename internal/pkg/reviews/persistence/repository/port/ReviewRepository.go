package repository

import (
	"context"

	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
)

// ReviewRepository is the persistence port for reviews, responses and
// helpful votes.
type ReviewRepository interface {
	// CreateReview stores the review and folds its rating into the
	// contractor's aggregate in the same transaction.
	CreateReview(ctx context.Context, r reviews.Review) (string, error)
	GetReview(ctx context.Context, reviewID string) (*reviews.Review, error)
	ListByContractor(ctx context.Context, contractorID string, limit, offset int) ([]reviews.Review, int, error)

	// HasCompletedProject reports whether the client and contractor finished
	// the given project together. Used for the verified badge.
	HasCompletedProject(ctx context.Context, projectID, clientID, contractorID string) (bool, error)

	ResolveContractor(ctx context.Context, userID string) (string, error)
	ContractorUser(ctx context.Context, contractorID string) (string, error)

	CreateResponse(ctx context.Context, r reviews.Response) (string, error)
	VoteHelpful(ctx context.Context, v reviews.HelpfulVote) error
}
