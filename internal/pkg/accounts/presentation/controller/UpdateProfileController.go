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

// UpdateProfileController handles partial profile updates for the caller.
type UpdateProfileController struct {
	UC *usecase.UpdateProfileUseCase
}

func NewUpdateProfileController(pool *pgxpool.Pool) *UpdateProfileController {
	repo := adapter.NewPgUserRepository(pool)
	return &UpdateProfileController{UC: usecase.NewUpdateProfileUseCase(repo)}
}

type updateProfileRequest struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	PhoneNumber     *string  `json:"phone_number"`
	Bio             *string  `json:"bio"`
	Location        *string  `json:"location"`
	Skills          []string `json:"skills"`
	HourlyRate      *string  `json:"hourly_rate"`
	ExperienceYears *int     `json:"experience_years"`
	AvatarURL       *string  `json:"avatar_url"`
}

func (h *UpdateProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID), usecase.UpdateProfileInput{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			PhoneNumber:     req.PhoneNumber,
			Bio:             req.Bio,
			Location:        req.Location,
			Skills:          req.Skills,
			HourlyRate:      req.HourlyRate,
			ExperienceYears: req.ExperienceYears,
			AvatarURL:       req.AvatarURL,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user))
	}
}
