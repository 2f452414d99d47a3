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

// CreateProjectUpdateController posts a progress note on a project.
type CreateProjectUpdateController struct {
	UC *usecase.ProjectUpdatesUseCase
}

func NewCreateProjectUpdateController(pool *pgxpool.Pool, q qport.Client) *CreateProjectUpdateController {
	return &CreateProjectUpdateController{UC: usecase.NewProjectUpdatesUseCase(adapter.NewPgProjectRepository(pool), q)}
}

type projectUpdateRequest struct {
	Title              string  `json:"title" binding:"required"`
	Content            string  `json:"content" binding:"required"`
	ProgressPercentage *int    `json:"progress_percentage"`
	MilestoneID        *string `json:"milestone_id"`
}

func (h *CreateProjectUpdateController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req projectUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update, err := h.UC.Create(ctx, projects.Update{
			ProjectID:          c.Param("projectId"),
			AuthorID:           c.GetString(middleware.CtxUserID),
			Title:              req.Title,
			Content:            req.Content,
			ProgressPercentage: req.ProgressPercentage,
			MilestoneID:        req.MilestoneID,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toUpdateResponse(*update))
	}
}

// ListProjectUpdatesController pages a project's progress feed.
type ListProjectUpdatesController struct {
	UC *usecase.ProjectUpdatesUseCase
}

func NewListProjectUpdatesController(pool *pgxpool.Pool) *ListProjectUpdatesController {
	return &ListProjectUpdatesController{UC: usecase.NewProjectUpdatesUseCase(adapter.NewPgProjectRepository(pool), nil)}
}

func (h *ListProjectUpdatesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		limit, offset := pageParams(c)
		page, err := h.UC.List(ctx, c.Param("projectId"), limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]updateResponse, 0, len(page.Updates))
		for _, u := range page.Updates {
			out = append(out, toUpdateResponse(u))
		}
		c.JSON(http.StatusOK, gin.H{"updates": out, "total": page.Total})
	}
}
