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

// ListProjectsController pages the public project board.
type ListProjectsController struct {
	UC *usecase.ListProjectsUseCase
}

func NewListProjectsController(pool *pgxpool.Pool) *ListProjectsController {
	return &ListProjectsController{UC: usecase.NewListProjectsUseCase(adapter.NewPgProjectRepository(pool))}
}

func (h *ListProjectsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		limit, offset := pageParams(c)
		page, err := h.UC.Execute(ctx, projects.SearchFilter{
			Status:     c.Query("status"),
			CategoryID: c.Query("category"),
			City:       c.Query("city"),
			Priority:   c.Query("priority"),
			Query:      c.Query("q"),
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		writeProjectsPage(c, page)
	}
}

// ListMyProjectsController pages the signed-in client's own projects,
// drafts included.
type ListMyProjectsController struct {
	UC *usecase.ListProjectsUseCase
}

func NewListMyProjectsController(pool *pgxpool.Pool) *ListMyProjectsController {
	return &ListMyProjectsController{UC: usecase.NewListProjectsUseCase(adapter.NewPgProjectRepository(pool))}
}

func (h *ListMyProjectsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		limit, offset := pageParams(c)
		page, err := h.UC.Execute(ctx, projects.SearchFilter{
			ClientID: c.GetString(middleware.CtxUserID),
			Status:   c.Query("status"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		writeProjectsPage(c, page)
	}
}

func writeProjectsPage(c *gin.Context, page *usecase.ProjectsPage) {
	list := make([]projectResponse, 0, len(page.Projects))
	for _, p := range page.Projects {
		list = append(list, toProjectResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"projects": list, "total": page.Total})
}
