package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/adapter"
)

// RefreshTokenController rotates refresh tokens (one controller per endpoint)
type RefreshTokenController struct {
	UC *usecase.RefreshTokenUseCase
}

func NewRefreshTokenController(pool *pgxpool.Pool, jwtSvc *security.JWTService, cache cacheport.Cache) *RefreshTokenController {
	repo := adapter.NewPgUserRepository(pool)
	uc := usecase.NewRefreshTokenUseCase(repo, jwtSvc, cache)
	return &RefreshTokenController{UC: uc}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *RefreshTokenController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, req.RefreshToken)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toAuthResponse(result))
	}
}
