package usecase

import (
	"context"
	"errors"
	"fmt"

	ads "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/persistence/repository/port"
)

// ClickAdUseCase records a click and resolves the banner's target URL.
type ClickAdUseCase struct {
	Repo repository.AdRepository
}

func NewClickAdUseCase(repo repository.AdRepository) *ClickAdUseCase {
	return &ClickAdUseCase{Repo: repo}
}

func (uc *ClickAdUseCase) Execute(ctx context.Context, adID string) (string, error) {
	target, err := uc.Repo.RecordClick(ctx, adID)
	if err != nil {
		if errors.Is(err, ads.ErrNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return target, nil
}
