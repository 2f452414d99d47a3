package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/adapter"
)

// LogoutController revokes the caller's refresh token (one controller per endpoint)
type LogoutController struct {
	UC *usecase.LogoutUseCase
}

func NewLogoutController(pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) *LogoutController {
	repo := adapter.NewPgUserRepository(pool)
	uc := usecase.NewLogoutUseCase(repo, jwtSvc, cache)
	return &LogoutController{UC: uc}
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req logoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID), req.RefreshToken); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
	}
}
