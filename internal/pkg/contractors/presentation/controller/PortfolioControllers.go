package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/adapter"
)

type portfolioRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	CategoryID  *string  `json:"category_id"`
	ProjectDate string   `json:"project_date"`
	ProjectCost *float64 `json:"project_cost"`
	ClientName  string   `json:"client_name"`
	IsFeatured  bool     `json:"is_featured"`
}

func (r portfolioRequest) toDomain(itemID string) (contractors.PortfolioItem, error) {
	item := contractors.PortfolioItem{
		ID:          itemID,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		ProjectCost: r.ProjectCost,
		ClientName:  r.ClientName,
		IsFeatured:  r.IsFeatured,
	}
	if r.ProjectDate != "" {
		d, err := time.Parse("2006-01-02", r.ProjectDate)
		if err != nil {
			return item, err
		}
		item.ProjectDate = d
	}
	return item, nil
}

// ListMyPortfolioController serves the caller's own portfolio.
type ListMyPortfolioController struct {
	UC *usecase.ManagePortfolioUseCase
}

func NewListMyPortfolioController(pool *pgxpool.Pool) *ListMyPortfolioController {
	return &ListMyPortfolioController{UC: usecase.NewManagePortfolioUseCase(adapter.NewPgContractorRepository(pool))}
}

func (h *ListMyPortfolioController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		items, err := h.UC.List(ctx, c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		out := make([]portfolioResponse, 0, len(items))
		for i := range items {
			out = append(out, toPortfolioResponse(&items[i]))
		}
		c.JSON(http.StatusOK, gin.H{"portfolio": out})
	}
}

// CreatePortfolioItemController adds a showcase entry for the caller.
type CreatePortfolioItemController struct {
	UC *usecase.ManagePortfolioUseCase
}

func NewCreatePortfolioItemController(pool *pgxpool.Pool) *CreatePortfolioItemController {
	return &CreatePortfolioItemController{UC: usecase.NewManagePortfolioUseCase(adapter.NewPgContractorRepository(pool))}
}

func (h *CreatePortfolioItemController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req portfolioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := req.toDomain("")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_date must be YYYY-MM-DD"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		created, err := h.UC.Create(ctx, c.GetString(middleware.CtxUserID), item)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toPortfolioResponse(created))
	}
}

// UpdatePortfolioItemController edits one showcase entry owned by the caller.
type UpdatePortfolioItemController struct {
	UC *usecase.ManagePortfolioUseCase
}

func NewUpdatePortfolioItemController(pool *pgxpool.Pool) *UpdatePortfolioItemController {
	return &UpdatePortfolioItemController{UC: usecase.NewManagePortfolioUseCase(adapter.NewPgContractorRepository(pool))}
}

func (h *UpdatePortfolioItemController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("itemId")
		if itemID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
			return
		}
		var req portfolioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := req.toDomain(itemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_date must be YYYY-MM-DD"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		updated, err := h.UC.Update(ctx, c.GetString(middleware.CtxUserID), item)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toPortfolioResponse(updated))
	}
}

// DeletePortfolioItemController removes one showcase entry owned by the caller.
type DeletePortfolioItemController struct {
	UC *usecase.ManagePortfolioUseCase
}

func NewDeletePortfolioItemController(pool *pgxpool.Pool) *DeletePortfolioItemController {
	return &DeletePortfolioItemController{UC: usecase.NewManagePortfolioUseCase(adapter.NewPgContractorRepository(pool))}
}

func (h *DeletePortfolioItemController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("itemId")
		if itemID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "itemId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Delete(ctx, c.GetString(middleware.CtxUserID), itemID); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "portfolio item removed"})
	}
}
