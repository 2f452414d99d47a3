package usecase

import (
	"context"
	"errors"
	"fmt"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/port"
)

// ReportsPage is one page of user complaints for staff triage.
type ReportsPage struct {
	Reports []moderation.Report
	Total   int
}

// ManageReportsUseCase is the staff workflow over user complaints.
type ManageReportsUseCase struct {
	Repo repository.ModerationRepository
}

func NewManageReportsUseCase(repo repository.ModerationRepository) *ManageReportsUseCase {
	return &ManageReportsUseCase{Repo: repo}
}

func (uc *ManageReportsUseCase) List(ctx context.Context, status string, limit, offset int) (*ReportsPage, error) {
	reports, total, err := uc.Repo.ListReports(ctx, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if reports == nil {
		reports = []moderation.Report{}
	}
	return &ReportsPage{Reports: reports, Total: total}, nil
}

// Resolve closes a report as resolved or dismissed.
func (uc *ManageReportsUseCase) Resolve(ctx context.Context, reportID, moderatorID, status, notes string) error {
	if status != moderation.ReportResolved && status != moderation.ReportDismissed {
		return fmt.Errorf("moderation: resolution must be %s or %s", moderation.ReportResolved, moderation.ReportDismissed)
	}
	if err := uc.Repo.ResolveReport(ctx, reportID, moderatorID, status, notes); err != nil {
		if errors.Is(err, moderation.ErrAlreadyResolved) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
