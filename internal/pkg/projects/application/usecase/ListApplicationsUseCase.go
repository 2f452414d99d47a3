package usecase

import (
	"context"
	"errors"
	"fmt"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/port"
)

// ListApplicationsUseCase lists bids. Clients see the applicants on their own
// project; contractors see their own bid history.
type ListApplicationsUseCase struct {
	Repo repository.ProjectRepository
}

func NewListApplicationsUseCase(repo repository.ProjectRepository) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{Repo: repo}
}

func (uc *ListApplicationsUseCase) ForProject(ctx context.Context, projectID, clientID string) ([]projects.Application, error) {
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

	list, err := uc.Repo.ListApplications(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []projects.Application{}
	}
	return list, nil
}

func (uc *ListApplicationsUseCase) ForContractor(ctx context.Context, userID string) ([]projects.Application, error) {
	contractorID, err := uc.Repo.ResolveContractor(ctx, userID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	list, err := uc.Repo.ListContractorApplications(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if list == nil {
		list = []projects.Application{}
	}
	return list, nil
}
