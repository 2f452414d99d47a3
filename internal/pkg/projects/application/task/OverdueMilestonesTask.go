package task

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/adapter"
)

// OverdueMilestonesTaskType flags milestones past their due date and alerts
// the project owner. Enqueued daily by the beat scheduler.
const OverdueMilestonesTaskType = "projects:overdue_milestones"

const overdueBatchSize = 200

// RegisterOverdueMilestonesTask binds the overdue check to the worker server.
func RegisterOverdueMilestonesTask(srv qport.Server, pool *pgxpool.Pool, q qport.Client) {
	srv.Register(OverdueMilestonesTaskType, func(ctx context.Context, t qport.Task) error {
		repo := repoAdapter.NewPgProjectRepository(pool)

		ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()

		milestones, err := repo.ListOverdueMilestones(ctx, time.Now(), overdueBatchSize)
		if err != nil {
			return err
		}

		for _, m := range milestones {
			project, err := repo.GetProject(ctx, m.ProjectID)
			if err != nil {
				logger.Warningf("overdue check: project %s: %v", m.ProjectID, err)
				continue
			}
			milestoneID := m.ID
			notificationtask.EnqueueDeliver(ctx, q, notificationtask.DeliverNotificationTaskPayload{
				UserID:      project.ClientID,
				Kind:        notifications.KindProjectUpdate,
				Title:       "Milestone overdue",
				Message:     fmt.Sprintf("Milestone %q on %q passed its due date.", m.Title, project.Title),
				RelatedKind: "milestone",
				RelatedID:   &milestoneID,
			})
		}

		if len(milestones) > 0 {
			logger.Infof("overdue check flagged %d milestones", len(milestones))
		}
		return nil
	})
}
