package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/projects/persistence/repository/adapter"
)

// ChangeStatusController moves a project along its lifecycle.
type ChangeStatusController struct {
	UC *usecase.ChangeStatusUseCase
}

func NewChangeStatusController(pool *pgxpool.Pool, q qport.Client) *ChangeStatusController {
	return &ChangeStatusController{UC: usecase.NewChangeStatusUseCase(adapter.NewPgProjectRepository(pool), q)}
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ChangeStatusController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		project, err := h.UC.Execute(ctx, c.Param("projectId"), c.GetString(middleware.CtxUserID), req.Status)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toProjectResponse(*project))
	}
}
