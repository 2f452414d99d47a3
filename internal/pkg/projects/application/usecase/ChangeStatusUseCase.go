package usecase

import (
	"context"
	"errors"
	"fmt"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// ChangeStatusUseCase moves a project along its lifecycle. Only the owning
// client may change status, and only along allowed transitions. Accepting an
// application is the sole path into in_progress.
type ChangeStatusUseCase struct {
	Repo  repository.ProjectRepository
	Queue qport.Client
}

func NewChangeStatusUseCase(repo repository.ProjectRepository, q qport.Client) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{Repo: repo, Queue: q}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, projectID, clientID, status string) (*projects.Project, error) {
	project, err := uc.Repo.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if project.ClientID != clientID {
		return nil, projects.ErrForbidden
	}
	if status == projects.StatusInProgress || !projects.CanTransition(project.Status, status) {
		return nil, projects.ErrInvalidTransition
	}

	if status == projects.StatusCompleted {
		err = uc.Repo.MarkCompleted(ctx, projectID)
	} else {
		err = uc.Repo.UpdateStatus(ctx, projectID, status)
	}
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Publishing puts the posting in front of contractors, so it goes
	// through the content scanner like any other public text.
	if status == projects.StatusPublished {
		moderationtask.EnqueueScan(ctx, uc.Queue, "project", projectID)
	}

	if project.ContractorID != nil && (status == projects.StatusCompleted || status == projects.StatusCancelled) {
		if contractorUserID, err := uc.Repo.ContractorUser(ctx, *project.ContractorID); err == nil {
			notificationtask.EnqueueDeliver(ctx, uc.Queue, notificationtask.DeliverNotificationTaskPayload{
				UserID:      contractorUserID,
				Kind:        notifications.KindProjectUpdate,
				Title:       fmt.Sprintf("Project %s", status),
				Message:     fmt.Sprintf("%q was marked %s by the client.", project.Title, status),
				RelatedKind: "project",
				RelatedID:   &projectID,
			})
		} else {
			logger.Warningf("notify contractor of project %s: %v", projectID, err)
		}
	}

	refreshed, err := uc.Repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return refreshed, nil
}
