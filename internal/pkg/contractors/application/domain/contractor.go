package contractors

import (
	"errors"
	"strings"
	"time"
)

// ExperienceLevel buckets a contractor's seniority for search filters.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

var (
	ErrNotFound           = errors.New("contractors: not found")
	ErrDuplicate          = errors.New("contractors: profile already exists")
	ErrInvalidExperience  = errors.New("contractors: experience_level must be beginner, intermediate or expert")
	ErrInvalidRateRange   = errors.New("contractors: hourly_rate_min must not exceed hourly_rate_max")
	ErrMissingTitle       = errors.New("contractors: title is required")
	ErrMissingOrg         = errors.New("contractors: issuing organization is required")
	ErrMissingBusinessRef = errors.New("contractors: contractor profile is required")
)

// Category is a service vertical contractors advertise under.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Icon        string    `db:"icon" json:"icon"`
	Description string    `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Skill is a concrete capability inside a category.
type Skill struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	CategoryID string    `db:"category_id" json:"category_id"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Profile is the public business card of a contractor account.
type Profile struct {
	ID                 string          `db:"id"`
	UserID             string          `db:"user_id"`
	BusinessName       string          `db:"business_name"`
	LicenseNumber      string          `db:"license_number"`
	InsuranceVerified  bool            `db:"insurance_verified"`
	ExperienceLevel    ExperienceLevel `db:"experience_level"`
	HourlyRateMin      float64         `db:"hourly_rate_min"`
	HourlyRateMax      float64         `db:"hourly_rate_max"`
	AvailabilityStatus bool            `db:"availability_status"`
	ResponseTimeHours  int             `db:"response_time_hours"`
	CompletedProjects  int             `db:"completed_projects"`
	RatingAverage      float64         `db:"rating_average"`
	RatingCount        int             `db:"rating_count"`
	ServiceRadius      int             `db:"service_radius"`
	CategoryIDs        []string        `db:"-"`
	SkillIDs           []string        `db:"-"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`

	// Denormalized owner fields filled by list/detail queries.
	DisplayName string  `db:"-"`
	AvatarURL   *string `db:"-"`
	Location    string  `db:"-"`
	IsOnline    bool    `db:"-"`
}

// NewProfile validates an owner-submitted profile.
func NewProfile(p Profile) (*Profile, error) {
	if p.UserID == "" {
		return nil, ErrMissingBusinessRef
	}
	if p.ExperienceLevel == "" {
		p.ExperienceLevel = ExperienceBeginner
	}
	switch p.ExperienceLevel {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExpert:
	default:
		return nil, ErrInvalidExperience
	}
	if p.HourlyRateMin < 0 || p.HourlyRateMax < 0 || p.HourlyRateMin > p.HourlyRateMax {
		return nil, ErrInvalidRateRange
	}
	if p.ResponseTimeHours <= 0 {
		p.ResponseTimeHours = 24
	}
	if p.ServiceRadius <= 0 {
		p.ServiceRadius = 25
	}
	return &p, nil
}

// NextRating folds one new rating into the running average.
func NextRating(average float64, count int, rating int) float64 {
	return (average*float64(count) + float64(rating)) / float64(count+1)
}

// PortfolioItem showcases previous work on a contractor's public profile.
type PortfolioItem struct {
	ID          string     `db:"id"`
	ContractorID string    `db:"contractor_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	CategoryID  *string    `db:"category_id"`
	ProjectDate time.Time  `db:"project_date"`
	ProjectCost *float64   `db:"project_cost"`
	ClientName  string     `db:"client_name"`
	IsFeatured  bool       `db:"is_featured"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func NewPortfolioItem(p PortfolioItem) (*PortfolioItem, error) {
	if p.ContractorID == "" {
		return nil, ErrMissingBusinessRef
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrMissingTitle
	}
	if p.ProjectDate.IsZero() {
		p.ProjectDate = time.Now()
	}
	return &p, nil
}

// Certification is a license or credential attached to a profile. Verification
// is a staff action, never self-served.
type Certification struct {
	ID                  string     `db:"id"`
	ContractorID        string     `db:"contractor_id"`
	Name                string     `db:"name"`
	IssuingOrganization string     `db:"issuing_organization"`
	IssueDate           time.Time  `db:"issue_date"`
	ExpiryDate          *time.Time `db:"expiry_date"`
	IsVerified          bool       `db:"is_verified"`
	CreatedAt           time.Time  `db:"created_at"`
}

func NewCertification(c Certification) (*Certification, error) {
	if c.ContractorID == "" {
		return nil, ErrMissingBusinessRef
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, ErrMissingTitle
	}
	if strings.TrimSpace(c.IssuingOrganization) == "" {
		return nil, ErrMissingOrg
	}
	if c.IssueDate.IsZero() {
		c.IssueDate = time.Now()
	}
	c.IsVerified = false
	return &c, nil
}

// IsExpired reports whether the certification lapsed before now.
func (c *Certification) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(now)
}

// SearchFilter narrows the contractor directory listing.
type SearchFilter struct {
	CategoryID    string
	SkillID       string
	City          string
	MinRating     float64
	MaxHourlyRate float64
	AvailableOnly bool
	VerifiedOnly  bool
	Limit         int
	Offset        int
}
