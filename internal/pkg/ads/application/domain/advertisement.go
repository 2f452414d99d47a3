package ads

import (
	"errors"
	"strings"
	"time"
)

// Placements recognized by the frontend.
const (
	PlacementHomeBanner  = "home_banner"
	PlacementSearchTop   = "search_top"
	PlacementProjectSide = "project_side"
	PlacementProfileSide = "profile_side"
)

var (
	ErrNotFound         = errors.New("ads: advertisement not found")
	ErrMissingTitle     = errors.New("ads: title is required")
	ErrMissingTargetURL = errors.New("ads: target url is required")
	ErrInvalidPlacement = errors.New("ads: unknown placement")
	ErrInvalidWindow    = errors.New("ads: ends_at must be after starts_at")
)

var validPlacements = map[string]bool{
	PlacementHomeBanner:  true,
	PlacementSearchTop:   true,
	PlacementProjectSide: true,
	PlacementProfileSide: true,
}

// Advertisement is a paid banner shown in a specific placement slot.
type Advertisement struct {
	ID               string     `db:"id"`
	Title            string     `db:"title"`
	ImageURL         string     `db:"image_url"`
	TargetURL        string     `db:"target_url"`
	Placement        string     `db:"placement"`
	StartsAt         time.Time  `db:"starts_at"`
	EndsAt           *time.Time `db:"ends_at"`
	ImpressionsCount int        `db:"impressions_count"`
	ClicksCount      int        `db:"clicks_count"`
	IsActive         bool       `db:"is_active"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// NewAdvertisement validates a banner before persistence. Counters start at
// zero regardless of input.
func NewAdvertisement(a Advertisement) (*Advertisement, error) {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(a.TargetURL) == "" {
		return nil, ErrMissingTargetURL
	}
	if !validPlacements[a.Placement] {
		return nil, ErrInvalidPlacement
	}
	if a.StartsAt.IsZero() {
		a.StartsAt = time.Now().UTC()
	}
	if a.EndsAt != nil && !a.EndsAt.After(a.StartsAt) {
		return nil, ErrInvalidWindow
	}
	a.ImpressionsCount = 0
	a.ClicksCount = 0
	a.IsActive = true
	return &a, nil
}

// IsLive tells whether the banner should be served at the given instant.
func (a *Advertisement) IsLive(now time.Time) bool {
	if !a.IsActive || now.Before(a.StartsAt) {
		return false
	}
	return a.EndsAt == nil || now.Before(*a.EndsAt)
}
