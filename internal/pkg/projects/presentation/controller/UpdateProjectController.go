package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/adapter"
)

// UpdateProjectController edits a project the caller owns. Absent fields
// keep their current value.
type UpdateProjectController struct {
	UC *usecase.UpdateProjectUseCase
}

func NewUpdateProjectController(pool *pgxpool.Pool) *UpdateProjectController {
	return &UpdateProjectController{UC: usecase.NewUpdateProjectUseCase(adapter.NewPgProjectRepository(pool))}
}

type updateProjectRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"category_id"`
	BudgetMin   *float64 `json:"budget_min"`
	BudgetMax   *float64 `json:"budget_max"`
	Priority    *string  `json:"priority"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	State       *string  `json:"state"`
	PostalCode  *string  `json:"postal_code"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Deadline    *string  `json:"deadline"`
}

func (h *UpdateProjectController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.UpdateProjectInput{
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
		}
		if req.StartDate != nil {
			t, err := parseDate(*req.StartDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
				return
			}
			in.StartDate = t
		}
		if req.EndDate != nil {
			t, err := parseDate(*req.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
				return
			}
			in.EndDate = t
		}
		if req.Deadline != nil {
			t, err := parseDate(*req.Deadline)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "deadline must be YYYY-MM-DD"})
				return
			}
			in.Deadline = t
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		project, err := h.UC.Execute(ctx, c.Param("projectId"), c.GetString(middleware.CtxUserID), in)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toProjectResponse(*project))
	}
}
