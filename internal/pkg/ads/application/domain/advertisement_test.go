package ads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvertisementDefaults(t *testing.T) {
	ad, err := NewAdvertisement(Advertisement{
		Title:            "  Summer promo  ",
		TargetURL:        "https://example.com/promo",
		Placement:        PlacementHomeBanner,
		ImpressionsCount: 99,
		ClicksCount:      12,
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer promo", ad.Title)
	assert.True(t, ad.IsActive)
	assert.Zero(t, ad.ImpressionsCount)
	assert.Zero(t, ad.ClicksCount)
	assert.False(t, ad.StartsAt.IsZero())
}

func TestNewAdvertisementValidation(t *testing.T) {
	_, err := NewAdvertisement(Advertisement{TargetURL: "https://x", Placement: PlacementHomeBanner})
	assert.ErrorIs(t, err, ErrMissingTitle)

	_, err = NewAdvertisement(Advertisement{Title: "t", Placement: PlacementHomeBanner})
	assert.ErrorIs(t, err, ErrMissingTargetURL)

	_, err = NewAdvertisement(Advertisement{Title: "t", TargetURL: "https://x", Placement: "popup"})
	assert.ErrorIs(t, err, ErrInvalidPlacement)
}

func TestNewAdvertisementRejectsInvertedWindow(t *testing.T) {
	start := time.Now()
	end := start.Add(-time.Hour)
	_, err := NewAdvertisement(Advertisement{
		Title:     "t",
		TargetURL: "https://x",
		Placement: PlacementSearchTop,
		StartsAt:  start,
		EndsAt:    &end,
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestIsLive(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(time.Hour)

	ad := Advertisement{IsActive: true, StartsAt: now.Add(-time.Hour), EndsAt: &end}
	assert.True(t, ad.IsLive(now))

	ad.IsActive = false
	assert.False(t, ad.IsLive(now))

	ad.IsActive = true
	ad.StartsAt = now.Add(time.Minute)
	assert.False(t, ad.IsLive(now))

	ad.StartsAt = now.Add(-time.Hour)
	past := now.Add(-time.Minute)
	ad.EndsAt = &past
	assert.False(t, ad.IsLive(now))

	ad.EndsAt = nil
	assert.True(t, ad.IsLive(now))
}
