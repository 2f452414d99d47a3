package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/adapter"
)

// DeliverNotificationTaskType is the queue task name for notification fan-out.
const DeliverNotificationTaskType = "notification:deliver"

// DeliverNotificationTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type DeliverNotificationTaskPayload struct {
	UserID      string         `json:"userId"`
	Kind        string         `json:"kind"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	RelatedKind string         `json:"relatedKind,omitempty"`
	RelatedID   *string        `json:"relatedId,omitempty"`
	ExtraData   map[string]any `json:"extraData,omitempty"`
}

// EnqueueDeliver pushes a notification onto the queue. Failures are logged and
// swallowed: notifying must never fail the operation that triggered it.
func EnqueueDeliver(ctx context.Context, q qport.Client, p DeliverNotificationTaskPayload) {
	if q == nil {
		return
	}
	b, err := json.Marshal(p)
	if err != nil {
		logger.Errorf("notification enqueue: encode payload: %v", err)
		return
	}
	opts := qport.EnqueueOption{Queue: "notifications", MaxRetry: 5}
	if _, err := q.Enqueue(ctx, qport.Task{Type: DeliverNotificationTaskType, Payload: b}, opts); err != nil {
		logger.Errorf("notification enqueue for %s: %v", p.UserID, err)
	}
}

// RegisterDeliverNotificationTask binds the fan-out handler to the worker server.
func RegisterDeliverNotificationTask(srv qport.Server, pool *pgxpool.Pool, mail usecase.EmailSender, siteName, siteURL string) {
	srv.Register(DeliverNotificationTaskType, func(ctx context.Context, t qport.Task) error {
		var p DeliverNotificationTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		repo := repoAdapter.NewPgNotificationRepository(pool)
		uc := usecase.NewDeliverNotificationUseCase(repo, mail, siteName, siteURL)

		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		return uc.Execute(ctx, notifications.Notification{
			UserID:      p.UserID,
			Kind:        p.Kind,
			Title:       p.Title,
			Message:     p.Message,
			RelatedKind: p.RelatedKind,
			RelatedID:   p.RelatedID,
			ExtraData:   p.ExtraData,
		})
	})
}
