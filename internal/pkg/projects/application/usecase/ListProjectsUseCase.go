package usecase

import (
	"context"
	"fmt"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// ProjectsPage is one page of the public project board or a client's own list.
type ProjectsPage struct {
	Projects []projects.Project
	Total    int
}

// ListProjectsUseCase pages through projects. Public listings only see
// published and later statuses; clients see their own drafts via ClientID.
type ListProjectsUseCase struct {
	Repo repository.ProjectRepository
}

func NewListProjectsUseCase(repo repository.ProjectRepository) *ListProjectsUseCase {
	return &ListProjectsUseCase{Repo: repo}
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, filter projects.SearchFilter) (*ProjectsPage, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	// Without an owner scope the board never exposes drafts.
	if filter.ClientID == "" && filter.Status == "" {
		filter.Status = projects.StatusPublished
	}

	list, total, err := uc.Repo.ListProjects(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []projects.Project{}
	}
	return &ProjectsPage{Projects: list, Total: total}, nil
}
