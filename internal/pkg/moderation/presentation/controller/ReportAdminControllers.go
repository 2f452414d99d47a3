package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/adapter"
)

type reportResponse struct {
	ID              string     `json:"id"`
	ReporterID      string     `json:"reporter_id"`
	ContentKind     string     `json:"content_kind"`
	ContentID       string     `json:"content_id"`
	ReportType      string     `json:"report_type"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ListReportsController pages through user complaints for staff triage.
type ListReportsController struct {
	UC *usecase.ManageReportsUseCase
}

func NewListReportsController(pool *pgxpool.Pool) *ListReportsController {
	return &ListReportsController{UC: usecase.NewManageReportsUseCase(adapter.NewPgModerationRepository(pool))}
}

func (h *ListReportsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		limit, offset := pageParams(c)
		page, err := h.UC.List(ctx, c.DefaultQuery("status", moderation.ReportPending), limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		reports := make([]reportResponse, 0, len(page.Reports))
		for _, r := range page.Reports {
			reports = append(reports, reportResponse{
				ID:              r.ID,
				ReporterID:      r.ReporterID,
				ContentKind:     r.ContentKind,
				ContentID:       r.ContentID,
				ReportType:      r.ReportType,
				Description:     r.Description,
				Status:          r.Status,
				ReviewedBy:      r.ReviewedBy,
				ResolutionNotes: r.ResolutionNotes,
				ResolvedAt:      r.ResolvedAt,
				CreatedAt:       r.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports, "total": page.Total})
	}
}

// ResolveReportController closes a complaint as resolved or dismissed.
type ResolveReportController struct {
	UC *usecase.ManageReportsUseCase
}

func NewResolveReportController(pool *pgxpool.Pool) *ResolveReportController {
	return &ResolveReportController{UC: usecase.NewManageReportsUseCase(adapter.NewPgModerationRepository(pool))}
}

type resolveReportRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *ResolveReportController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resolveReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Resolve(ctx, c.Param("reportId"), c.GetString(middleware.CtxUserID), req.Status, req.Notes); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": req.Status})
	}
}
