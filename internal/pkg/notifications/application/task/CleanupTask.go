package task

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/adapter"
)

// CleanupTaskType prunes read notifications older than the retention window.
const CleanupTaskType = "notification:cleanup"

const readRetention = 30 * 24 * time.Hour

// RegisterCleanupTask binds the retention handler to the worker server.
func RegisterCleanupTask(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(CleanupTaskType, func(ctx context.Context, t qport.Task) error {
		repo := repoAdapter.NewPgNotificationRepository(pool)

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		n, err := repo.DeleteReadBefore(ctx, time.Now().Add(-readRetention))
		if err != nil {
			return err
		}
		logger.Infof("notification cleanup removed %d rows", n)
		return nil
	})
}
