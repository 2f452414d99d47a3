package usecase

import (
	"context"
	"fmt"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/port"
)

// ReportContentUseCase files a user complaint and pushes the content into the
// review queue at high priority.
type ReportContentUseCase struct {
	Repo repository.ModerationRepository
}

func NewReportContentUseCase(repo repository.ModerationRepository) *ReportContentUseCase {
	return &ReportContentUseCase{Repo: repo}
}

func (uc *ReportContentUseCase) Execute(ctx context.Context, in moderation.Report) (*moderation.Report, error) {
	report, err := moderation.NewReport(in)
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.CreateReport(ctx, *report)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	report.ID = id

	if _, err := uc.Repo.EnqueueItem(ctx, moderation.QueueItem{
		ContentKind: report.ContentKind,
		ContentID:   report.ContentID,
		Priority:    "high",
		Notes:       fmt.Sprintf("user report: %s", report.ReportType),
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return report, nil
}
