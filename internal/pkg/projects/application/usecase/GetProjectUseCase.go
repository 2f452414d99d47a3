package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// ProjectDetail is a project with its milestones.
type ProjectDetail struct {
	Project    projects.Project
	Milestones []projects.Milestone
}

// GetProjectUseCase loads one project. Views are counted for everyone except
// the owning client. Drafts are visible to their owner only.
type GetProjectUseCase struct {
	Repo repository.ProjectRepository
}

func NewGetProjectUseCase(repo repository.ProjectRepository) *GetProjectUseCase {
	return &GetProjectUseCase{Repo: repo}
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, projectID, viewerID string) (*ProjectDetail, error) {
	project, err := uc.Repo.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if project.Status == projects.StatusDraft && project.ClientID != viewerID {
		return nil, projects.ErrNotFound
	}

	if viewerID != project.ClientID {
		if err := uc.Repo.IncrementViews(ctx, projectID); err != nil {
			logger.Warningf("count view for project %s: %v", projectID, err)
		} else {
			project.ViewsCount++
		}
	}

	milestones, err := uc.Repo.ListMilestones(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &ProjectDetail{Project: *project, Milestones: milestones}, nil
}
