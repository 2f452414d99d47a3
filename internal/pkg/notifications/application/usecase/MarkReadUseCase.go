package usecase

import (
	"context"
	"fmt"

	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/port"
)

// MarkReadUseCase marks specific notifications, or the whole inbox, as read.
type MarkReadUseCase struct {
	Repo repository.NotificationRepository
}

func NewMarkReadUseCase(repo repository.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, userID string, ids []string) (int64, error) {
	var (
		n   int64
		err error
	)
	if len(ids) == 0 {
		n, err = uc.Repo.MarkAllRead(ctx, userID)
	} else {
		n, err = uc.Repo.MarkRead(ctx, userID, ids)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return n, nil
}
