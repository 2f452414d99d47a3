package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// ManageMilestonesUseCase maintains project checkpoints. Only the owning
// client edits the plan; the assigned contractor marks milestones done
// through project updates.
type ManageMilestonesUseCase struct {
	Repo repository.ProjectRepository
}

func NewManageMilestonesUseCase(repo repository.ProjectRepository) *ManageMilestonesUseCase {
	return &ManageMilestonesUseCase{Repo: repo}
}

func (uc *ManageMilestonesUseCase) requireOwner(ctx context.Context, projectID, clientID string) (*projects.Project, error) {
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
	return project, nil
}

func (uc *ManageMilestonesUseCase) List(ctx context.Context, projectID string) ([]projects.Milestone, error) {
	list, err := uc.Repo.ListMilestones(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []projects.Milestone{}
	}
	return list, nil
}

func (uc *ManageMilestonesUseCase) Create(ctx context.Context, clientID string, in projects.Milestone) (*projects.Milestone, error) {
	if _, err := uc.requireOwner(ctx, in.ProjectID, clientID); err != nil {
		return nil, err
	}

	milestone, err := projects.NewMilestone(in)
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.CreateMilestone(ctx, *milestone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	milestone.ID = id
	return milestone, nil
}

// SetStatus moves a milestone between pending, in_progress and completed.
// Completion stamps the completion date.
func (uc *ManageMilestonesUseCase) SetStatus(ctx context.Context, projectID, clientID, milestoneID, status string) error {
	if _, err := uc.requireOwner(ctx, projectID, clientID); err != nil {
		return err
	}
	switch status {
	case projects.MilestonePending, projects.MilestoneInProgress, projects.MilestoneCompleted:
	default:
		return errors.New("projects: invalid milestone status")
	}

	milestones, err := uc.Repo.ListMilestones(ctx, projectID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for _, m := range milestones {
		if m.ID != milestoneID {
			continue
		}
		m.Status = status
		if status == projects.MilestoneCompleted && m.CompletionDate == nil {
			now := time.Now()
			m.CompletionDate = &now
		}
		if err := uc.Repo.UpdateMilestone(ctx, m); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	}
	return projects.ErrNotFound
}

func (uc *ManageMilestonesUseCase) Delete(ctx context.Context, projectID, clientID, milestoneID string) error {
	if _, err := uc.requireOwner(ctx, projectID, clientID); err != nil {
		return err
	}
	if err := uc.Repo.DeleteMilestone(ctx, projectID, milestoneID); err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
