package usecase

import (
	"context"
	"errors"
	"fmt"

	ads "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/persistence/repository/port"
)

// AdsPage is one page of banners with the overall total.
type AdsPage struct {
	Ads   []ads.Advertisement
	Total int
}

// ManageAdsUseCase covers the staff-side banner operations.
type ManageAdsUseCase struct {
	Repo repository.AdRepository
}

func NewManageAdsUseCase(repo repository.AdRepository) *ManageAdsUseCase {
	return &ManageAdsUseCase{Repo: repo}
}

func (uc *ManageAdsUseCase) Create(ctx context.Context, a ads.Advertisement) (*ads.Advertisement, error) {
	banner, err := ads.NewAdvertisement(a)
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.Create(ctx, *banner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	created, err := uc.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return created, nil
}

func (uc *ManageAdsUseCase) List(ctx context.Context, limit, offset int) (*AdsPage, error) {
	out, total, err := uc.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &AdsPage{Ads: out, Total: total}, nil
}

func (uc *ManageAdsUseCase) SetActive(ctx context.Context, adID string, active bool) error {
	if err := uc.Repo.SetActive(ctx, adID, active); err != nil {
		if errors.Is(err, ads.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
