package usecase

import (
	"context"
	"fmt"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// CreateProjectUseCase posts a new job as a draft owned by the caller.
type CreateProjectUseCase struct {
	Repo repository.ProjectRepository
}

func NewCreateProjectUseCase(repo repository.ProjectRepository) *CreateProjectUseCase {
	return &CreateProjectUseCase{Repo: repo}
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, in projects.Project) (*projects.Project, error) {
	project, err := projects.NewProject(in)
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.CreateProject(ctx, *project)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	created, err := uc.Repo.GetProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}
