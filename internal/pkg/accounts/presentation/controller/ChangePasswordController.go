package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/adapter"
)

// ChangePasswordController verifies the old password before replacing it.
type ChangePasswordController struct {
	UC *usecase.ChangePasswordUseCase
}

func NewChangePasswordController(pool *pgxpool.Pool) *ChangePasswordController {
	repo := adapter.NewPgUserRepository(pool)
	return &ChangePasswordController{UC: usecase.NewChangePasswordUseCase(repo, security.NewBcryptService())}
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *ChangePasswordController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID), req.OldPassword, req.NewPassword); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "password updated"})
	}
}
