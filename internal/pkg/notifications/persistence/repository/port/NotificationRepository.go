package repository

import (
	"context"
	"time"

	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
)

// NotificationRepository defines persistence for the notification inbox and
// per-user delivery preferences.
type NotificationRepository interface {
	Create(ctx context.Context, n notifications.Notification) (string, error)
	List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]notifications.Notification, int, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)

	GetPreferences(ctx context.Context, userID string) (*notifications.Preferences, error)
	UpsertPreferences(ctx context.Context, p notifications.Preferences) error

	GetRecipient(ctx context.Context, userID string) (*notifications.Recipient, error)
	ListUsersWithUnread(ctx context.Context, limit int) ([]string, error)
	ListUnread(ctx context.Context, userID string, limit int) ([]notifications.Notification, error)
}
