package usecase

import (
	"context"
	"fmt"

	adminpanel "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/persistence/repository/port"
)

// DashboardUseCase assembles the staff dashboard snapshot.
type DashboardUseCase struct {
	Repo repository.AdminRepository
}

func NewDashboardUseCase(repo repository.AdminRepository) *DashboardUseCase {
	return &DashboardUseCase{Repo: repo}
}

func (uc *DashboardUseCase) Execute(ctx context.Context) (*adminpanel.DashboardStats, error) {
	stats, err := uc.Repo.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return stats, nil
}
