package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/adapter"
)

// CreateProjectController posts a new draft project for the signed-in client.
type CreateProjectController struct {
	UC *usecase.CreateProjectUseCase
}

func NewCreateProjectController(pool *pgxpool.Pool) *CreateProjectController {
	return &CreateProjectController{UC: usecase.NewCreateProjectUseCase(adapter.NewPgProjectRepository(pool))}
}

type projectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	CategoryID  *string  `json:"category_id"`
	BudgetMin   float64  `json:"budget_min"`
	BudgetMax   float64  `json:"budget_max"`
	Priority    string   `json:"priority"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	PostalCode  string   `json:"postal_code"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Deadline    string   `json:"deadline"`
}

func (h *CreateProjectController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req projectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		startDate, err := parseDate(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		deadline, err := parseDate(req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "deadline must be YYYY-MM-DD"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		project, err := h.UC.Execute(ctx, projects.Project{
			ClientID:    c.GetString(middleware.CtxUserID),
			Title:       req.Title,
			Description: req.Description,
			CategoryID:  req.CategoryID,
			BudgetMin:   req.BudgetMin,
			BudgetMax:   req.BudgetMax,
			Priority:    req.Priority,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			PostalCode:  req.PostalCode,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			StartDate:   startDate,
			EndDate:     endDate,
			Deadline:    deadline,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toProjectResponse(*project))
	}
}
