package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	ads "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/ads/persistence/repository/adapter"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, ads.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

type adResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	ImageURL         string     `json:"image_url"`
	TargetURL        string     `json:"target_url"`
	Placement        string     `json:"placement"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
	ImpressionsCount int        `json:"impressions_count"`
	ClicksCount      int        `json:"clicks_count"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toAdResponse(a ads.Advertisement) adResponse {
	return adResponse{
		ID:               a.ID,
		Title:            a.Title,
		ImageURL:         a.ImageURL,
		TargetURL:        a.TargetURL,
		Placement:        a.Placement,
		StartsAt:         a.StartsAt,
		EndsAt:           a.EndsAt,
		ImpressionsCount: a.ImpressionsCount,
		ClicksCount:      a.ClicksCount,
		IsActive:         a.IsActive,
		CreatedAt:        a.CreatedAt,
	}
}

// ServeAdsController returns the live banners for one placement.
type ServeAdsController struct {
	UC *usecase.ServeAdsUseCase
}

func NewServeAdsController(pool *pgxpool.Pool) *ServeAdsController {
	return &ServeAdsController{UC: usecase.NewServeAdsUseCase(repoAdapter.NewPgAdRepository(pool))}
}

func (h *ServeAdsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		placement := c.Query("placement")
		if placement == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "placement is required"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		banners, err := h.UC.Execute(ctx, placement, limit)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]adResponse, 0, len(banners))
		for _, a := range banners {
			out = append(out, toAdResponse(a))
		}
		c.JSON(http.StatusOK, gin.H{"ads": out})
	}
}

// ClickAdController counts a click and hands back the destination.
type ClickAdController struct {
	UC *usecase.ClickAdUseCase
}

func NewClickAdController(pool *pgxpool.Pool) *ClickAdController {
	return &ClickAdController{UC: usecase.NewClickAdUseCase(repoAdapter.NewPgAdRepository(pool))}
}

func (h *ClickAdController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		target, err := h.UC.Execute(ctx, c.Param("adId"))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"target_url": target})
	}
}

// CreateAdController is the staff endpoint for adding a banner.
type CreateAdController struct {
	UC *usecase.ManageAdsUseCase
}

func NewCreateAdController(pool *pgxpool.Pool) *CreateAdController {
	return &CreateAdController{UC: usecase.NewManageAdsUseCase(repoAdapter.NewPgAdRepository(pool))}
}

type createAdRequest struct {
	Title     string     `json:"title" binding:"required"`
	ImageURL  string     `json:"image_url"`
	TargetURL string     `json:"target_url" binding:"required"`
	Placement string     `json:"placement" binding:"required"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

func (h *CreateAdController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createAdRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		a := ads.Advertisement{
			Title:     req.Title,
			ImageURL:  req.ImageURL,
			TargetURL: req.TargetURL,
			Placement: req.Placement,
			EndsAt:    req.EndsAt,
		}
		if req.StartsAt != nil {
			a.StartsAt = *req.StartsAt
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		created, err := h.UC.Create(ctx, a)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toAdResponse(*created))
	}
}

// ListAdsController is the staff listing with counters.
type ListAdsController struct {
	UC *usecase.ManageAdsUseCase
}

func NewListAdsController(pool *pgxpool.Pool) *ListAdsController {
	return &ListAdsController{UC: usecase.NewManageAdsUseCase(repoAdapter.NewPgAdRepository(pool))}
}

func (h *ListAdsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		page, err := h.UC.List(ctx, limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]adResponse, 0, len(page.Ads))
		for _, a := range page.Ads {
			out = append(out, toAdResponse(a))
		}
		c.JSON(http.StatusOK, gin.H{"ads": out, "total": page.Total})
	}
}

// SetAdActiveController toggles a banner on or off.
type SetAdActiveController struct {
	UC *usecase.ManageAdsUseCase
}

func NewSetAdActiveController(pool *pgxpool.Pool) *SetAdActiveController {
	return &SetAdActiveController{UC: usecase.NewManageAdsUseCase(repoAdapter.NewPgAdRepository(pool))}
}

type setAdActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *SetAdActiveController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setAdActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.SetActive(ctx, c.Param("adId"), *req.IsActive); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("adId"), "is_active": *req.IsActive})
	}
}
