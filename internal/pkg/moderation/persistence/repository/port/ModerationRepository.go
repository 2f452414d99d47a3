package repository

import (
	"context"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
)

// ModerationRepository defines persistence for the moderation pipeline.
type ModerationRepository interface {
	// FetchContentText resolves the moderatable text for a content kind and id.
	FetchContentText(ctx context.Context, kind, id string) (string, error)
	// HideContent pulls the content from public view where the kind supports it.
	HideContent(ctx context.Context, kind, id string) error

	SaveFilter(ctx context.Context, f moderation.ContentFilter) (string, error)
	GetFilter(ctx context.Context, kind, id string) (*moderation.ContentFilter, error)

	ListActiveRules(ctx context.Context) ([]moderation.Rule, error)
	CreateRule(ctx context.Context, r moderation.Rule) (string, error)
	SetRuleActive(ctx context.Context, id string, active bool) error

	CreateReport(ctx context.Context, r moderation.Report) (string, error)
	ListReports(ctx context.Context, status string, limit, offset int) ([]moderation.Report, int, error)
	ResolveReport(ctx context.Context, reportID, moderatorID, status, notes string) error

	EnqueueItem(ctx context.Context, item moderation.QueueItem) (string, error)
	GetQueueItem(ctx context.Context, itemID string) (*moderation.QueueItem, error)
	ListQueue(ctx context.Context, status string, limit, offset int) ([]moderation.QueueItem, int, error)
	AssignQueueItem(ctx context.Context, itemID, moderatorID string) error
	CompleteQueueItem(ctx context.Context, itemID, notes string) error

	RecordAction(ctx context.Context, a moderation.Action) (string, error)
	ListActions(ctx context.Context, kind, id string) ([]moderation.Action, error)
}
