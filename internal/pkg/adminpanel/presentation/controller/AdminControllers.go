package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	adminpanel "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/persistence/repository/adapter"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, adminpanel.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

type userSummaryResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	UserType   string    `json:"user_type"`
	IsVerified bool      `json:"is_verified"`
	IsStaff    bool      `json:"is_staff"`
	IsActive   bool      `json:"is_active"`
	LastSeen   time.Time `json:"last_seen"`
	CreatedAt  time.Time `json:"created_at"`
}

// DashboardController serves the aggregate dashboard snapshot.
type DashboardController struct {
	UC *usecase.DashboardUseCase
}

func NewDashboardController(pool *pgxpool.Pool) *DashboardController {
	return &DashboardController{UC: usecase.NewDashboardUseCase(repoAdapter.NewPgAdminRepository(pool))}
}

func (h *DashboardController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		stats, err := h.UC.Execute(ctx)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ListUsersController pages accounts for staff, with optional search.
type ListUsersController struct {
	UC *usecase.ManageUsersUseCase
}

func NewListUsersController(pool *pgxpool.Pool) *ListUsersController {
	return &ListUsersController{UC: usecase.NewManageUsersUseCase(repoAdapter.NewPgAdminRepository(pool))}
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		page, err := h.UC.List(ctx, c.Query("q"), limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]userSummaryResponse, 0, len(page.Users))
		for _, u := range page.Users {
			out = append(out, userSummaryResponse{
				ID:         u.ID,
				Email:      u.Email,
				Username:   u.Username,
				FirstName:  u.FirstName,
				LastName:   u.LastName,
				UserType:   u.UserType,
				IsVerified: u.IsVerified,
				IsStaff:    u.IsStaff,
				IsActive:   u.IsActive,
				LastSeen:   u.LastSeen,
				CreatedAt:  u.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"users": out, "total": page.Total})
	}
}

// SetUserActiveController suspends or reactivates an account.
type SetUserActiveController struct {
	UC *usecase.ManageUsersUseCase
}

func NewSetUserActiveController(pool *pgxpool.Pool) *SetUserActiveController {
	return &SetUserActiveController{UC: usecase.NewManageUsersUseCase(repoAdapter.NewPgAdminRepository(pool))}
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *SetUserActiveController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.SetActive(ctx, c.Param("userId"), *req.IsActive); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("userId"), "is_active": *req.IsActive})
	}
}

// VerifyContractorController marks a contractor account verified.
type VerifyContractorController struct {
	UC *usecase.ManageUsersUseCase
}

func NewVerifyContractorController(pool *pgxpool.Pool) *VerifyContractorController {
	return &VerifyContractorController{UC: usecase.NewManageUsersUseCase(repoAdapter.NewPgAdminRepository(pool))}
}

func (h *VerifyContractorController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.VerifyContractor(ctx, c.Param("userId")); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("userId"), "is_verified": true})
	}
}

// SystemHealthController reports host and process health.
type SystemHealthController struct {
	UC *usecase.SystemHealthUseCase
}

func NewSystemHealthController(pool *pgxpool.Pool) *SystemHealthController {
	return &SystemHealthController{UC: usecase.NewSystemHealthUseCase(repoAdapter.NewPgAdminRepository(pool))}
}

func (h *SystemHealthController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		c.JSON(http.StatusOK, h.UC.Execute(ctx))
	}
}
