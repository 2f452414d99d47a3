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

// UpdatesPage is one page of a project's progress feed.
type UpdatesPage struct {
	Updates []projects.Update
	Total   int
}

// ProjectUpdatesUseCase is the progress feed. The client and the assigned
// contractor may post; an update carrying a progress figure syncs it onto the
// project, and the other party gets notified.
type ProjectUpdatesUseCase struct {
	Repo  repository.ProjectRepository
	Queue qport.Client
}

func NewProjectUpdatesUseCase(repo repository.ProjectRepository, q qport.Client) *ProjectUpdatesUseCase {
	return &ProjectUpdatesUseCase{Repo: repo, Queue: q}
}

func (uc *ProjectUpdatesUseCase) List(ctx context.Context, projectID string, limit, offset int) (*UpdatesPage, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, total, err := uc.Repo.ListUpdates(ctx, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []projects.Update{}
	}
	return &UpdatesPage{Updates: list, Total: total}, nil
}

func (uc *ProjectUpdatesUseCase) Create(ctx context.Context, in projects.Update) (*projects.Update, error) {
	update, err := projects.NewUpdate(in)
	if err != nil {
		return nil, err
	}

	project, err := uc.Repo.GetProject(ctx, update.ProjectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	counterpart, err := uc.authorCounterpart(ctx, project, update.AuthorID)
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.CreateUpdate(ctx, *update)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	update.ID = id

	if update.ProgressPercentage != nil && project.Status == projects.StatusInProgress {
		if err := uc.Repo.SetProgress(ctx, project.ID, *update.ProgressPercentage); err != nil {
			logger.Warningf("sync progress for project %s: %v", project.ID, err)
		}
	}

	if counterpart != "" {
		notificationtask.EnqueueDeliver(ctx, uc.Queue, notificationtask.DeliverNotificationTaskPayload{
			UserID:      counterpart,
			Kind:        notifications.KindProjectUpdate,
			Title:       "Project update",
			Message:     fmt.Sprintf("New update on %q: %s", project.Title, update.Title),
			RelatedKind: "project",
			RelatedID:   &project.ID,
		})
	}
	moderationtask.EnqueueScan(ctx, uc.Queue, "project", project.ID)

	return update, nil
}

// authorCounterpart checks that the author participates in the project and
// returns the user to notify, or "" when there is no assigned contractor yet.
func (uc *ProjectUpdatesUseCase) authorCounterpart(ctx context.Context, project *projects.Project, authorID string) (string, error) {
	var contractorUserID string
	if project.ContractorID != nil {
		id, err := uc.Repo.ContractorUser(ctx, *project.ContractorID)
		if err != nil && !errors.Is(err, projects.ErrNotFound) {
			return "", fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		contractorUserID = id
	}

	switch authorID {
	case project.ClientID:
		return contractorUserID, nil
	case contractorUserID:
		return project.ClientID, nil
	}
	return "", projects.ErrForbidden
}
