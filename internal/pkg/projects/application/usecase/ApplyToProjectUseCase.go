package usecase

import (
	"context"
	"errors"
	"fmt"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// ApplyToProjectUseCase submits a contractor bid on a published project.
// The client is notified and the cover letter goes through content scanning.
type ApplyToProjectUseCase struct {
	Repo  repository.ProjectRepository
	Queue qport.Client
}

func NewApplyToProjectUseCase(repo repository.ProjectRepository, q qport.Client) *ApplyToProjectUseCase {
	return &ApplyToProjectUseCase{Repo: repo, Queue: q}
}

func (uc *ApplyToProjectUseCase) Execute(ctx context.Context, userID string, in projects.Application) (*projects.Application, error) {
	contractorID, err := uc.Repo.ResolveContractor(ctx, userID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	in.ContractorID = contractorID

	application, err := projects.NewApplication(in)
	if err != nil {
		return nil, err
	}

	project, err := uc.Repo.GetProject(ctx, application.ProjectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !project.IsOpen() {
		return nil, projects.ErrNotOpenForApplications
	}
	if project.ClientID == userID {
		return nil, projects.ErrForbidden
	}

	id, err := uc.Repo.CreateApplication(ctx, *application)
	if err != nil {
		if errors.Is(err, projects.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	application.ID = id

	notificationtask.EnqueueDeliver(ctx, uc.Queue, notificationtask.DeliverNotificationTaskPayload{
		UserID:      project.ClientID,
		Kind:        notifications.KindNewApplication,
		Title:       "New application",
		Message:     fmt.Sprintf("A contractor applied to %q.", project.Title),
		RelatedKind: "project",
		RelatedID:   &application.ProjectID,
	})
	moderationtask.EnqueueScan(ctx, uc.Queue, "application", id)

	created, err := uc.Repo.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}
