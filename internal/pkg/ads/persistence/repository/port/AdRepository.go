package repository

import (
	"context"

	ads "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/application/domain"
)

// AdRepository is the persistence port for advertisement banners.
type AdRepository interface {
	Create(ctx context.Context, a ads.Advertisement) (string, error)
	Get(ctx context.Context, adID string) (*ads.Advertisement, error)
	List(ctx context.Context, limit, offset int) ([]ads.Advertisement, int, error)

	// ListLive returns active banners for a placement whose window covers
	// now, bumping their impression counters in the same statement.
	ListLive(ctx context.Context, placement string, limit int) ([]ads.Advertisement, error)

	// RecordClick bumps the click counter and returns the target URL.
	RecordClick(ctx context.Context, adID string) (string, error)

	SetActive(ctx context.Context, adID string, active bool) error
}
