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

// RegisterController handles the sign-up endpoint only (one controller per endpoint)
type RegisterController struct {
	UC *usecase.RegisterUseCase
}

func NewRegisterController(pool *pgxpool.Pool, jwtSvc *security.JWTService) *RegisterController {
	repo := adapter.NewPgUserRepository(pool)
	uc := usecase.NewRegisterUseCase(repo, security.NewBcryptService(), jwtSvc)
	return &RegisterController{UC: uc}
}

type registerRequest struct {
	Email       string  `json:"email" binding:"required"`
	Username    string  `json:"username"`
	Password    string  `json:"password" binding:"required"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	UserType    string  `json:"user_type"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, usecase.RegisterInput{
			Email:       req.Email,
			Username:    req.Username,
			Password:    req.Password,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
			UserType:    req.UserType,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toAuthResponse(result))
	}
}
