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

// UpsertProfileController creates or replaces the caller's contractor profile.
type UpsertProfileController struct {
	UC *usecase.UpsertProfileUseCase
}

func NewUpsertProfileController(pool *pgxpool.Pool) *UpsertProfileController {
	repo := adapter.NewPgContractorRepository(pool)
	return &UpsertProfileController{UC: usecase.NewUpsertProfileUseCase(repo)}
}

type upsertProfileRequest struct {
	BusinessName       string   `json:"business_name"`
	LicenseNumber      string   `json:"license_number"`
	ExperienceLevel    string   `json:"experience_level"`
	HourlyRateMin      float64  `json:"hourly_rate_min"`
	HourlyRateMax      float64  `json:"hourly_rate_max"`
	AvailabilityStatus *bool    `json:"availability_status"`
	ResponseTimeHours  int      `json:"response_time_hours"`
	ServiceRadius      int      `json:"service_radius"`
	CategoryIDs        []string `json:"category_ids"`
	SkillIDs           []string `json:"skill_ids"`
}

func (h *UpsertProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		available := true
		if req.AvailabilityStatus != nil {
			available = *req.AvailabilityStatus
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		profile, err := h.UC.Execute(ctx, contractors.Profile{
			UserID:             c.GetString(middleware.CtxUserID),
			BusinessName:       req.BusinessName,
			LicenseNumber:      req.LicenseNumber,
			ExperienceLevel:    contractors.ExperienceLevel(req.ExperienceLevel),
			HourlyRateMin:      req.HourlyRateMin,
			HourlyRateMax:      req.HourlyRateMax,
			AvailabilityStatus: available,
			ResponseTimeHours:  req.ResponseTimeHours,
			ServiceRadius:      req.ServiceRadius,
			CategoryIDs:        req.CategoryIDs,
			SkillIDs:           req.SkillIDs,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toProfileResponse(profile))
	}
}
