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

// CreateMilestoneController adds a checkpoint to a project the caller owns.
type CreateMilestoneController struct {
	UC *usecase.ManageMilestonesUseCase
}

func NewCreateMilestoneController(pool *pgxpool.Pool) *CreateMilestoneController {
	return &CreateMilestoneController{UC: usecase.NewManageMilestonesUseCase(adapter.NewPgProjectRepository(pool))}
}

type milestoneRequest struct {
	Title             string  `json:"title" binding:"required"`
	Description       string  `json:"description"`
	DueDate           string  `json:"due_date" binding:"required"`
	PaymentPercentage float64 `json:"payment_percentage"`
	SortOrder         int     `json:"sort_order"`
}

func (h *CreateMilestoneController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req milestoneRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dueDate, err := parseDate(req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		milestone, err := h.UC.Create(ctx, c.GetString(middleware.CtxUserID), projects.Milestone{
			ProjectID:         c.Param("projectId"),
			Title:             req.Title,
			Description:       req.Description,
			DueDate:           *dueDate,
			PaymentPercentage: req.PaymentPercentage,
			SortOrder:         req.SortOrder,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toMilestoneResponse(*milestone))
	}
}

// SetMilestoneStatusController moves a checkpoint between states.
type SetMilestoneStatusController struct {
	UC *usecase.ManageMilestonesUseCase
}

func NewSetMilestoneStatusController(pool *pgxpool.Pool) *SetMilestoneStatusController {
	return &SetMilestoneStatusController{UC: usecase.NewManageMilestonesUseCase(adapter.NewPgProjectRepository(pool))}
}

type milestoneStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *SetMilestoneStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req milestoneStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.SetStatus(ctx, c.Param("projectId"), c.GetString(middleware.CtxUserID),
			c.Param("milestoneId"), req.Status)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": req.Status})
	}
}

// DeleteMilestoneController removes a checkpoint.
type DeleteMilestoneController struct {
	UC *usecase.ManageMilestonesUseCase
}

func NewDeleteMilestoneController(pool *pgxpool.Pool) *DeleteMilestoneController {
	return &DeleteMilestoneController{UC: usecase.NewManageMilestonesUseCase(adapter.NewPgProjectRepository(pool))}
}

func (h *DeleteMilestoneController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := h.UC.Delete(ctx, c.Param("projectId"), c.GetString(middleware.CtxUserID), c.Param("milestoneId"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
