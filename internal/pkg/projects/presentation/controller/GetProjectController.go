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

// GetProjectController returns one project with its milestones.
type GetProjectController struct {
	UC *usecase.GetProjectUseCase
}

func NewGetProjectController(pool *pgxpool.Pool) *GetProjectController {
	return &GetProjectController{UC: usecase.NewGetProjectUseCase(adapter.NewPgProjectRepository(pool))}
}

func (h *GetProjectController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		detail, err := h.UC.Execute(ctx, c.Param("projectId"), c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		milestones := make([]milestoneResponse, 0, len(detail.Milestones))
		for _, m := range detail.Milestones {
			milestones = append(milestones, toMilestoneResponse(m))
		}
		c.JSON(http.StatusOK, gin.H{
			"project":    toProjectResponse(detail.Project),
			"milestones": milestones,
		})
	}
}
