package usecase

import (
	"context"
	"errors"
	"fmt"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// ErrInvalidApplicationDecision rejects verbs outside accept/reject/withdraw.
var ErrInvalidApplicationDecision = errors.New("projects: decision must be accept, reject or withdraw")

// DecideApplicationUseCase settles a bid. The client accepts or rejects;
// the applying contractor may withdraw while the bid is still pending.
// Accepting assigns the contractor, rejects the other pending bids and moves
// the project to in_progress in one transaction.
type DecideApplicationUseCase struct {
	Repo  repository.ProjectRepository
	Queue qport.Client
}

func NewDecideApplicationUseCase(repo repository.ProjectRepository, q qport.Client) *DecideApplicationUseCase {
	return &DecideApplicationUseCase{Repo: repo, Queue: q}
}

func (uc *DecideApplicationUseCase) Execute(ctx context.Context, applicationID, callerID, decision string) error {
	application, err := uc.Repo.GetApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if application.Status != projects.ApplicationPending {
		return projects.ErrApplicationClosed
	}

	project, err := uc.Repo.GetProject(ctx, application.ProjectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	switch decision {
	case "accept", "reject":
		if project.ClientID != callerID {
			return projects.ErrForbidden
		}
	case "withdraw":
		contractorID, err := uc.Repo.ResolveContractor(ctx, callerID)
		if err != nil || contractorID != application.ContractorID {
			return projects.ErrForbidden
		}
	default:
		return ErrInvalidApplicationDecision
	}

	switch decision {
	case "accept":
		if !project.IsOpen() {
			return projects.ErrInvalidTransition
		}
		if err := uc.Repo.AcceptApplication(ctx, *application); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		uc.notifyContractor(ctx, application, project, "Application accepted",
			fmt.Sprintf("Your application to %q was accepted.", project.Title))
	case "reject":
		if err := uc.Repo.SetApplicationStatus(ctx, applicationID, projects.ApplicationRejected); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		uc.notifyContractor(ctx, application, project, "Application rejected",
			fmt.Sprintf("Your application to %q was not selected.", project.Title))
	case "withdraw":
		if err := uc.Repo.SetApplicationStatus(ctx, applicationID, projects.ApplicationWithdrawn); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	return nil
}

func (uc *DecideApplicationUseCase) notifyContractor(ctx context.Context, a *projects.Application, p *projects.Project, title, message string) {
	contractorUserID, err := uc.Repo.ContractorUser(ctx, a.ContractorID)
	if err != nil {
		logger.Warningf("notify applicant %s: %v", a.ID, err)
		return
	}
	notificationtask.EnqueueDeliver(ctx, uc.Queue, notificationtask.DeliverNotificationTaskPayload{
		UserID:      contractorUserID,
		Kind:        notifications.KindApplicationStatus,
		Title:       title,
		Message:     message,
		RelatedKind: "project",
		RelatedID:   &p.ID,
	})
}
