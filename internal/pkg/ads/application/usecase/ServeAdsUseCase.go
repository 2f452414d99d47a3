package usecase

import (
	"context"
	"fmt"

	ads "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/persistence/repository/port"
)

// ServeAdsUseCase returns the live banners for one placement slot and counts
// the impressions.
type ServeAdsUseCase struct {
	Repo repository.AdRepository
}

func NewServeAdsUseCase(repo repository.AdRepository) *ServeAdsUseCase {
	return &ServeAdsUseCase{Repo: repo}
}

func (uc *ServeAdsUseCase) Execute(ctx context.Context, placement string, limit int) ([]ads.Advertisement, error) {
	out, err := uc.Repo.ListLive(ctx, placement, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return out, nil
}
