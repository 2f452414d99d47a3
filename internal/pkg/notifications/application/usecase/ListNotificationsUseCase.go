package usecase

import (
	"context"
	"fmt"

	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/port"
)

// InboxPage is one page of a user's notification inbox.
type InboxPage struct {
	Notifications []notifications.Notification
	Total         int
	Unread        int
}

type ListNotificationsUseCase struct {
	Repo repository.NotificationRepository
}

func NewListNotificationsUseCase(repo repository.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{Repo: repo}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID string, unreadOnly bool, limit, offset int) (*InboxPage, error) {
	list, total, err := uc.Repo.List(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	unread, err := uc.Repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []notifications.Notification{}
	}
	return &InboxPage{Notifications: list, Total: total, Unread: unread}, nil
}
