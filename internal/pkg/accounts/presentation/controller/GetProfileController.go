package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/adapter"
)

// GetProfileController serves the caller's own profile with activity stats.
type GetProfileController struct {
	UC *usecase.GetProfileUseCase
}

func NewGetProfileController(pool *pgxpool.Pool) *GetProfileController {
	repo := adapter.NewPgUserRepository(pool)
	return &GetProfileController{UC: usecase.NewGetProfileUseCase(repo)}
}

func (h *GetProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		profile, err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":  toUserResponse(profile.User),
			"stats": profile.Stats,
		})
	}
}
