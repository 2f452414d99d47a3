package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/adapter"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, moderation.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, moderation.ErrAlreadyResolved):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// ReportContentController files a user complaint about a piece of content.
type ReportContentController struct {
	UC *usecase.ReportContentUseCase
}

func NewReportContentController(pool *pgxpool.Pool) *ReportContentController {
	return &ReportContentController{UC: usecase.NewReportContentUseCase(adapter.NewPgModerationRepository(pool))}
}

type reportRequest struct {
	ContentKind string `json:"content_kind" binding:"required"`
	ContentID   string `json:"content_id" binding:"required"`
	ReportType  string `json:"report_type" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (h *ReportContentController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		report, err := h.UC.Execute(ctx, moderation.Report{
			ReporterID:  c.GetString(middleware.CtxUserID),
			ContentKind: req.ContentKind,
			ContentID:   req.ContentID,
			ReportType:  req.ReportType,
			Description: req.Description,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": report.ID, "status": report.Status})
	}
}
