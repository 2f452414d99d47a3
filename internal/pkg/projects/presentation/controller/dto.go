package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/usecase"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, projects.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, projects.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, projects.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, projects.ErrInvalidTransition),
		errors.Is(err, projects.ErrNotOpenForApplications),
		errors.Is(err, projects.ErrApplicationClosed):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type projectResponse struct {
	ID                 string     `json:"id"`
	ClientID           string     `json:"client_id"`
	ContractorID       *string    `json:"contractor_id,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	CategoryID         *string    `json:"category_id,omitempty"`
	BudgetMin          float64    `json:"budget_min"`
	BudgetMax          float64    `json:"budget_max"`
	Status             string     `json:"status"`
	Priority           string     `json:"priority"`
	Address            string     `json:"address,omitempty"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	PostalCode         string     `json:"postal_code,omitempty"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	ProgressPercentage int        `json:"progress_percentage"`
	IsFeatured         bool       `json:"is_featured"`
	ViewsCount         int        `json:"views_count"`
	ApplicationsCount  int        `json:"applications_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toProjectResponse(p projects.Project) projectResponse {
	return projectResponse{
		ID:                 p.ID,
		ClientID:           p.ClientID,
		ContractorID:       p.ContractorID,
		Title:              p.Title,
		Description:        p.Description,
		CategoryID:         p.CategoryID,
		BudgetMin:          p.BudgetMin,
		BudgetMax:          p.BudgetMax,
		Status:             p.Status,
		Priority:           p.Priority,
		Address:            p.Address,
		City:               p.City,
		State:              p.State,
		PostalCode:         p.PostalCode,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		Deadline:           p.Deadline,
		ProgressPercentage: p.ProgressPercentage,
		IsFeatured:         p.IsFeatured,
		ViewsCount:         p.ViewsCount,
		ApplicationsCount:  p.ApplicationsCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

type applicationResponse struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"project_id"`
	ContractorID     string    `json:"contractor_id"`
	ContractorName   string    `json:"contractor_name,omitempty"`
	BusinessName     string    `json:"business_name,omitempty"`
	CoverLetter      string    `json:"cover_letter"`
	ProposedBudget   float64   `json:"proposed_budget"`
	ProposedTimeline int       `json:"proposed_timeline"`
	Status           string    `json:"status"`
	AppliedAt        time.Time `json:"applied_at"`
}

func toApplicationResponse(a projects.Application) applicationResponse {
	return applicationResponse{
		ID:               a.ID,
		ProjectID:        a.ProjectID,
		ContractorID:     a.ContractorID,
		ContractorName:   a.ContractorName,
		BusinessName:     a.BusinessName,
		CoverLetter:      a.CoverLetter,
		ProposedBudget:   a.ProposedBudget,
		ProposedTimeline: a.ProposedTimeline,
		Status:           a.Status,
		AppliedAt:        a.AppliedAt,
	}
}

type milestoneResponse struct {
	ID                string     `json:"id"`
	ProjectID         string     `json:"project_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	DueDate           time.Time  `json:"due_date"`
	CompletionDate    *time.Time `json:"completion_date,omitempty"`
	Status            string     `json:"status"`
	PaymentPercentage float64    `json:"payment_percentage"`
	SortOrder         int        `json:"sort_order"`
	IsOverdue         bool       `json:"is_overdue"`
}

func toMilestoneResponse(m projects.Milestone) milestoneResponse {
	return milestoneResponse{
		ID:                m.ID,
		ProjectID:         m.ProjectID,
		Title:             m.Title,
		Description:       m.Description,
		DueDate:           m.DueDate,
		CompletionDate:    m.CompletionDate,
		Status:            m.Status,
		PaymentPercentage: m.PaymentPercentage,
		SortOrder:         m.SortOrder,
		IsOverdue:         m.IsOverdue(time.Now()),
	}
}

type updateResponse struct {
	ID                 string    `json:"id"`
	ProjectID          string    `json:"project_id"`
	AuthorID           string    `json:"author_id"`
	AuthorName         string    `json:"author_name,omitempty"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	ProgressPercentage *int      `json:"progress_percentage,omitempty"`
	MilestoneID        *string   `json:"milestone_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func toUpdateResponse(u projects.Update) updateResponse {
	return updateResponse{
		ID:                 u.ID,
		ProjectID:          u.ProjectID,
		AuthorID:           u.AuthorID,
		AuthorName:         u.AuthorName,
		Title:              u.Title,
		Content:            u.Content,
		ProgressPercentage: u.ProgressPercentage,
		MilestoneID:        u.MilestoneID,
		CreatedAt:          u.CreatedAt,
	}
}

// parseDate accepts bare dates from clients.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
