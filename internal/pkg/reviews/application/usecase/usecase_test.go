package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
)

type contractorAggregate struct {
	average float64
	count   int
}

// fakeReviewRepo is an in-memory ReviewRepository for use case tests. Its
// CreateReview folds the rating into the contractor aggregate the way the
// SQL transaction does.
type fakeReviewRepo struct {
	mu          sync.Mutex
	reviews     map[string]*reviews.Review
	aggregates  map[string]*contractorAggregate
	contractors map[string]string // userID -> contractorID
	completed   map[string]bool   // projectID|clientID|contractorID
	seq         int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews:     map[string]*reviews.Review{},
		aggregates:  map[string]*contractorAggregate{},
		contractors: map[string]string{},
		completed:   map[string]bool{},
	}
}

func (f *fakeReviewRepo) CreateReview(_ context.Context, r reviews.Review) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.reviews {
		if existing.ClientID == r.ClientID && existing.ContractorID == r.ContractorID {
			return "", reviews.ErrDuplicate
		}
	}
	f.seq++
	r.ID = "review-" + string(rune('0'+f.seq))
	f.reviews[r.ID] = &r

	agg := f.aggregates[r.ContractorID]
	if agg == nil {
		agg = &contractorAggregate{}
		f.aggregates[r.ContractorID] = agg
	}
	agg.average = (agg.average*float64(agg.count) + float64(r.Rating)) / float64(agg.count+1)
	agg.count++
	return r.ID, nil
}

func (f *fakeReviewRepo) GetReview(_ context.Context, reviewID string) (*reviews.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reviews[reviewID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, reviews.ErrNotFound
}

func (f *fakeReviewRepo) ListByContractor(context.Context, string, int, int) ([]reviews.Review, int, error) {
	return nil, 0, nil
}

func (f *fakeReviewRepo) HasCompletedProject(_ context.Context, projectID, clientID, contractorID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed[projectID+"|"+clientID+"|"+contractorID], nil
}

func (f *fakeReviewRepo) ResolveContractor(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.contractors[userID]; ok {
		return id, nil
	}
	return "", reviews.ErrNotFound
}

func (f *fakeReviewRepo) ContractorUser(_ context.Context, contractorID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, id := range f.contractors {
		if id == contractorID {
			return userID, nil
		}
	}
	return "", reviews.ErrNotFound
}

func (f *fakeReviewRepo) CreateResponse(context.Context, reviews.Response) (string, error) {
	return "resp-1", nil
}

func (f *fakeReviewRepo) VoteHelpful(context.Context, reviews.HelpfulVote) error { return nil }

// fakeQueue records every enqueued task.
type fakeQueue struct {
	mu    sync.Mutex
	tasks []qport.Task
}

func (f *fakeQueue) Enqueue(_ context.Context, t qport.Task, _ ...qport.EnqueueOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	return "task-1", nil
}

func (f *fakeQueue) Close() error { return nil }

func strPtr(s string) *string { return &s }

func TestCreateReviewFoldsRatingAggregate(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.contractors["user-c"] = "contractor-1"
	uc := NewCreateReviewUseCase(repo, &fakeQueue{})

	_, err := uc.Execute(context.Background(), reviews.Review{
		ClientID: "client-1", ContractorID: "contractor-1", Rating: 5, Comment: "solid work",
	})
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), reviews.Review{
		ClientID: "client-2", ContractorID: "contractor-1", Rating: 3, Comment: "decent but slow",
	})
	require.NoError(t, err)

	agg := repo.aggregates["contractor-1"]
	require.NotNil(t, agg)
	assert.Equal(t, 2, agg.count)
	assert.InDelta(t, 4.0, agg.average, 0.001)
}

func TestCreateReviewVerifiedBadge(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.contractors["user-c"] = "contractor-1"
	repo.completed["proj-1|client-1|contractor-1"] = true
	uc := NewCreateReviewUseCase(repo, &fakeQueue{})

	verified, err := uc.Execute(context.Background(), reviews.Review{
		ClientID: "client-1", ContractorID: "contractor-1", ProjectID: strPtr("proj-1"),
		Rating: 5, Comment: "finished the whole remodel",
	})
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	unverified, err := uc.Execute(context.Background(), reviews.Review{
		ClientID: "client-2", ContractorID: "contractor-1", ProjectID: strPtr("proj-9"),
		Rating: 4, Comment: "never actually hired them",
	})
	require.NoError(t, err)
	assert.False(t, unverified.IsVerified)
}

func TestCreateReviewRejectsSelfReview(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.contractors["user-c"] = "contractor-1"
	uc := NewCreateReviewUseCase(repo, &fakeQueue{})

	_, err := uc.Execute(context.Background(), reviews.Review{
		ClientID: "user-c", ContractorID: "contractor-1", Rating: 5, Comment: "best contractor ever",
	})
	assert.ErrorIs(t, err, reviews.ErrSelfReview)
	assert.Empty(t, repo.reviews)
}

func TestCreateReviewNotifiesContractorAndScans(t *testing.T) {
	repo := newFakeReviewRepo()
	repo.contractors["user-c"] = "contractor-1"
	q := &fakeQueue{}
	uc := NewCreateReviewUseCase(repo, q)

	review, err := uc.Execute(context.Background(), reviews.Review{
		ClientID: "client-1", ContractorID: "contractor-1", Rating: 2, Comment: "left the site a mess",
	})
	require.NoError(t, err)
	require.Len(t, q.tasks, 2)

	assert.Equal(t, notificationtask.DeliverNotificationTaskType, q.tasks[0].Type)
	var deliver notificationtask.DeliverNotificationTaskPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload, &deliver))
	assert.Equal(t, "user-c", deliver.UserID)
	assert.Equal(t, notifications.KindNewReview, deliver.Kind)

	assert.Equal(t, moderationtask.ScanContentTaskType, q.tasks[1].Type)
	var scan moderationtask.ScanContentTaskPayload
	require.NoError(t, json.Unmarshal(q.tasks[1].Payload, &scan))
	assert.Equal(t, "review", scan.ContentKind)
	assert.Equal(t, review.ID, scan.ContentID)
}

func TestCreateReviewDuplicate(t *testing.T) {
	repo := newFakeReviewRepo()
	uc := NewCreateReviewUseCase(repo, &fakeQueue{})

	_, err := uc.Execute(context.Background(), reviews.Review{
		ClientID: "client-1", ContractorID: "contractor-1", Rating: 4, Comment: "good",
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), reviews.Review{
		ClientID: "client-1", ContractorID: "contractor-1", Rating: 1, Comment: "changed my mind",
	})
	assert.ErrorIs(t, err, reviews.ErrDuplicate)
}
