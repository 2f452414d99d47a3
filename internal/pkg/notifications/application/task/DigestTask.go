package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/adapter"
)

// DigestTaskType emails one user their unread summary.
const DigestTaskType = "notification:digest"

type DigestTaskPayload struct {
	UserID string `json:"userId"`
}

// FanOutDigests enqueues one digest task per user with unread notifications.
// Called from the beat scheduler; each user is an independent task so one bad
// mailbox cannot stall the batch.
func FanOutDigests(ctx context.Context, pool *pgxpool.Pool, q qport.Client) error {
	repo := repoAdapter.NewPgNotificationRepository(pool)
	uc := usecase.NewSendDigestUseCase(repo, nil, "", "")

	userIDs, err := uc.Candidates(ctx)
	if err != nil {
		return err
	}
	for _, id := range userIDs {
		b, err := json.Marshal(DigestTaskPayload{UserID: id})
		if err != nil {
			continue
		}
		opts := qport.EnqueueOption{Queue: "notifications", MaxRetry: 3, UniqueTTL: 12 * time.Hour}
		if _, err := q.Enqueue(ctx, qport.Task{Type: DigestTaskType, Payload: b}, opts); err != nil {
			logger.Errorf("digest enqueue for %s: %v", id, err)
		}
	}
	logger.Infof("digest fan-out queued %d users", len(userIDs))
	return nil
}

// RegisterDigestTask binds the digest handler to the worker server.
func RegisterDigestTask(srv qport.Server, pool *pgxpool.Pool, mail usecase.EmailSender, siteName, siteURL string) {
	srv.Register(DigestTaskType, func(ctx context.Context, t qport.Task) error {
		var p DigestTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return err
		}

		repo := repoAdapter.NewPgNotificationRepository(pool)
		uc := usecase.NewSendDigestUseCase(repo, mail, siteName, siteURL)

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		return uc.Execute(ctx, p.UserID)
	})
}
