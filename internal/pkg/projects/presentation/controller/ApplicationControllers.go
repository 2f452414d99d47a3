package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	projects "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/adapter"
)

// ApplyToProjectController submits a contractor bid.
type ApplyToProjectController struct {
	UC *usecase.ApplyToProjectUseCase
}

func NewApplyToProjectController(pool *pgxpool.Pool, q qport.Client) *ApplyToProjectController {
	return &ApplyToProjectController{UC: usecase.NewApplyToProjectUseCase(adapter.NewPgProjectRepository(pool), q)}
}

type applicationRequest struct {
	CoverLetter      string  `json:"cover_letter" binding:"required"`
	ProposedBudget   float64 `json:"proposed_budget" binding:"required"`
	ProposedTimeline int     `json:"proposed_timeline" binding:"required"`
}

func (h *ApplyToProjectController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applicationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		application, err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID), projects.Application{
			ProjectID:        c.Param("projectId"),
			CoverLetter:      req.CoverLetter,
			ProposedBudget:   req.ProposedBudget,
			ProposedTimeline: req.ProposedTimeline,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toApplicationResponse(*application))
	}
}

// ListProjectApplicationsController shows a client the bids on their project.
type ListProjectApplicationsController struct {
	UC *usecase.ListApplicationsUseCase
}

func NewListProjectApplicationsController(pool *pgxpool.Pool) *ListProjectApplicationsController {
	return &ListProjectApplicationsController{UC: usecase.NewListApplicationsUseCase(adapter.NewPgProjectRepository(pool))}
}

func (h *ListProjectApplicationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		list, err := h.UC.ForProject(ctx, c.Param("projectId"), c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		writeApplications(c, list)
	}
}

// ListMyApplicationsController shows a contractor their bid history.
type ListMyApplicationsController struct {
	UC *usecase.ListApplicationsUseCase
}

func NewListMyApplicationsController(pool *pgxpool.Pool) *ListMyApplicationsController {
	return &ListMyApplicationsController{UC: usecase.NewListApplicationsUseCase(adapter.NewPgProjectRepository(pool))}
}

func (h *ListMyApplicationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		list, err := h.UC.ForContractor(ctx, c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		writeApplications(c, list)
	}
}

// DecideApplicationController accepts, rejects or withdraws a bid.
type DecideApplicationController struct {
	UC *usecase.DecideApplicationUseCase
}

func NewDecideApplicationController(pool *pgxpool.Pool, q qport.Client) *DecideApplicationController {
	return &DecideApplicationController{UC: usecase.NewDecideApplicationUseCase(adapter.NewPgProjectRepository(pool), q)}
}

type decideApplicationRequest struct {
	Decision string `json:"decision" binding:"required"`
}

func (h *DecideApplicationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req decideApplicationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, c.Param("applicationId"), c.GetString(middleware.CtxUserID), req.Decision); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"decision": req.Decision})
	}
}

func writeApplications(c *gin.Context, list []projects.Application) {
	out := make([]applicationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toApplicationResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"applications": out})
}
