package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/adapter"
)

// LoginController handles the login endpoint only (one controller per endpoint)
type LoginController struct {
	UC *usecase.LoginUseCase
}

func NewLoginController(pool *pgxpool.Pool, jwtSvc *security.JWTService) *LoginController {
	repo := adapter.NewPgUserRepository(pool)
	uc := usecase.NewLoginUseCase(repo, security.NewBcryptService(), jwtSvc)
	return &LoginController{UC: uc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, req.Email, req.Password)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toAuthResponse(result))
	}
}
