package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/adapter"
)

// ListCategoriesController serves the service category taxonomy.
type ListCategoriesController struct {
	UC *usecase.ListCatalogUseCase
}

func NewListCategoriesController(pool *pgxpool.Pool, cache cacheport.Cache) *ListCategoriesController {
	repo := adapter.NewPgContractorRepository(pool)
	return &ListCategoriesController{UC: usecase.NewListCatalogUseCase(repo, cache)}
}

func (h *ListCategoriesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		categories, err := h.UC.Categories(ctx)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// ListSkillsController serves skills, optionally narrowed to one category.
type ListSkillsController struct {
	UC *usecase.ListCatalogUseCase
}

func NewListSkillsController(pool *pgxpool.Pool, cache cacheport.Cache) *ListSkillsController {
	repo := adapter.NewPgContractorRepository(pool)
	return &ListSkillsController{UC: usecase.NewListCatalogUseCase(repo, cache)}
}

func (h *ListSkillsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		skills, err := h.UC.Skills(ctx, c.Query("category"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"skills": skills})
	}
}
