package usecase

import (
	"context"
	"errors"
	"fmt"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/port"
)

// ErrInvalidDecision rejects moderation verbs outside the allowed set.
var ErrInvalidDecision = errors.New("moderation: decision must be approve, hide or warn")

// QueuePage is one page of the human review queue.
type QueuePage struct {
	Items []moderation.QueueItem
	Total int
}

// ReviewQueueUseCase is the staff workflow over the moderation queue:
// list, claim, decide.
type ReviewQueueUseCase struct {
	Repo repository.ModerationRepository
}

func NewReviewQueueUseCase(repo repository.ModerationRepository) *ReviewQueueUseCase {
	return &ReviewQueueUseCase{Repo: repo}
}

func (uc *ReviewQueueUseCase) List(ctx context.Context, status string, limit, offset int) (*QueuePage, error) {
	items, total, err := uc.Repo.ListQueue(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if items == nil {
		items = []moderation.QueueItem{}
	}
	return &QueuePage{Items: items, Total: total}, nil
}

func (uc *ReviewQueueUseCase) Claim(ctx context.Context, itemID, moderatorID string) error {
	if err := uc.Repo.AssignQueueItem(ctx, itemID, moderatorID); err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Decide completes a queue item. The decision is recorded in the audit log;
// hide additionally pulls the content from public view.
func (uc *ReviewQueueUseCase) Decide(ctx context.Context, itemID, moderatorID, decision, reason string) error {
	switch decision {
	case moderation.ActionApprove, moderation.ActionHide, moderation.ActionWarn:
	default:
		return ErrInvalidDecision
	}

	item, err := uc.Repo.GetQueueItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if decision == moderation.ActionHide {
		if err := uc.Repo.HideContent(ctx, item.ContentKind, item.ContentID); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if _, err := uc.Repo.RecordAction(ctx, moderation.Action{
		ContentKind: item.ContentKind,
		ContentID:   item.ContentID,
		Action:      decision,
		Reason:      reason,
		ModeratorID: &moderatorID,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Repo.CompleteQueueItem(ctx, item.ID, reason); err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (uc *ReviewQueueUseCase) Actions(ctx context.Context, kind, contentID string) ([]moderation.Action, error) {
	actions, err := uc.Repo.ListActions(ctx, kind, contentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if actions == nil {
		actions = []moderation.Action{}
	}
	return actions, nil
}
