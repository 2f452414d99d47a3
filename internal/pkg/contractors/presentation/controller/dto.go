package controller

import (
	"errors"
	"net/http"
	"time"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/usecase"
)

type profileResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"user_id"`
	DisplayName        string   `json:"display_name"`
	AvatarURL          *string  `json:"avatar_url"`
	Location           string   `json:"location"`
	IsOnline           bool     `json:"is_online"`
	BusinessName       string   `json:"business_name"`
	LicenseNumber      string   `json:"license_number"`
	InsuranceVerified  bool     `json:"insurance_verified"`
	ExperienceLevel    string   `json:"experience_level"`
	HourlyRateMin      float64  `json:"hourly_rate_min"`
	HourlyRateMax      float64  `json:"hourly_rate_max"`
	AvailabilityStatus bool     `json:"availability_status"`
	ResponseTimeHours  int      `json:"response_time_hours"`
	CompletedProjects  int      `json:"completed_projects"`
	RatingAverage      float64  `json:"rating_average"`
	RatingCount        int      `json:"rating_count"`
	ServiceRadius      int      `json:"service_radius"`
	CategoryIDs        []string `json:"category_ids,omitempty"`
	SkillIDs           []string `json:"skill_ids,omitempty"`
}

func toProfileResponse(p *contractors.Profile) profileResponse {
	return profileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		DisplayName:        p.DisplayName,
		AvatarURL:          p.AvatarURL,
		Location:           p.Location,
		IsOnline:           p.IsOnline,
		BusinessName:       p.BusinessName,
		LicenseNumber:      p.LicenseNumber,
		InsuranceVerified:  p.InsuranceVerified,
		ExperienceLevel:    string(p.ExperienceLevel),
		HourlyRateMin:      p.HourlyRateMin,
		HourlyRateMax:      p.HourlyRateMax,
		AvailabilityStatus: p.AvailabilityStatus,
		ResponseTimeHours:  p.ResponseTimeHours,
		CompletedProjects:  p.CompletedProjects,
		RatingAverage:      p.RatingAverage,
		RatingCount:        p.RatingCount,
		ServiceRadius:      p.ServiceRadius,
		CategoryIDs:        p.CategoryIDs,
		SkillIDs:           p.SkillIDs,
	}
}

type portfolioResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"category_id"`
	ProjectDate time.Time `json:"project_date"`
	ProjectCost *float64  `json:"project_cost"`
	ClientName  string    `json:"client_name"`
	IsFeatured  bool      `json:"is_featured"`
}

func toPortfolioResponse(item *contractors.PortfolioItem) portfolioResponse {
	return portfolioResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		ProjectDate: item.ProjectDate,
		ProjectCost: item.ProjectCost,
		ClientName:  item.ClientName,
		IsFeatured:  item.IsFeatured,
	}
}

type certificationResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           time.Time  `json:"issue_date"`
	ExpiryDate          *time.Time `json:"expiry_date"`
	IsVerified          bool       `json:"is_verified"`
	IsExpired           bool       `json:"is_expired"`
}

func toCertificationResponse(cert *contractors.Certification) certificationResponse {
	return certificationResponse{
		ID:                  cert.ID,
		Name:                cert.Name,
		IssuingOrganization: cert.IssuingOrganization,
		IssueDate:           cert.IssueDate,
		ExpiryDate:          cert.ExpiryDate,
		IsVerified:          cert.IsVerified,
		IsExpired:           cert.IsExpired(time.Now()),
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, contractors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, contractors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
