package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// UpdateProjectInput is a partial edit. Nil fields keep their current value.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	CategoryID  *string
	BudgetMin   *float64
	BudgetMax   *float64
	Priority    *string
	Address     *string
	City        *string
	State       *string
	PostalCode  *string
	StartDate   *time.Time
	EndDate     *time.Time
	Deadline    *time.Time
}

// UpdateProjectUseCase edits a project. Only the owning client may edit, and
// only while the project has not finished.
type UpdateProjectUseCase struct {
	Repo repository.ProjectRepository
}

func NewUpdateProjectUseCase(repo repository.ProjectRepository) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{Repo: repo}
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, projectID, clientID string, in UpdateProjectInput) (*projects.Project, error) {
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
	if project.Status == projects.StatusCompleted || project.Status == projects.StatusCancelled {
		return nil, projects.ErrInvalidTransition
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, projects.ErrMissingTitle
		}
		project.Title = *in.Title
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, projects.ErrMissingDescription
		}
		project.Description = *in.Description
	}
	if in.CategoryID != nil {
		project.CategoryID = in.CategoryID
	}
	if in.BudgetMin != nil {
		project.BudgetMin = *in.BudgetMin
	}
	if in.BudgetMax != nil {
		project.BudgetMax = *in.BudgetMax
	}
	if project.BudgetMin < 0 || project.BudgetMin > project.BudgetMax {
		return nil, projects.ErrInvalidBudget
	}
	if in.Priority != nil {
		if !projects.ValidPriority(*in.Priority) {
			return nil, projects.ErrInvalidPriority
		}
		project.Priority = *in.Priority
	}
	if in.Address != nil {
		project.Address = *in.Address
	}
	if in.City != nil {
		project.City = *in.City
	}
	if in.State != nil {
		project.State = *in.State
	}
	if in.PostalCode != nil {
		project.PostalCode = *in.PostalCode
	}
	if in.StartDate != nil {
		project.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		project.EndDate = in.EndDate
	}
	if in.Deadline != nil {
		project.Deadline = in.Deadline
	}

	if err := uc.Repo.UpdateProject(ctx, *project); err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return project, nil
}
