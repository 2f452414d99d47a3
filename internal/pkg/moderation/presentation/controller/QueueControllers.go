package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/adapter"
)

type queueItemResponse struct {
	ID          string     `json:"id"`
	ContentKind string     `json:"content_kind"`
	ContentID   string     `json:"content_id"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func toQueueItemResponse(item moderation.QueueItem) queueItemResponse {
	return queueItemResponse{
		ID:          item.ID,
		ContentKind: item.ContentKind,
		ContentID:   item.ContentID,
		Priority:    item.Priority,
		Status:      item.Status,
		AssignedTo:  item.AssignedTo,
		Notes:       item.Notes,
		CreatedAt:   item.CreatedAt,
		CompletedAt: item.CompletedAt,
	}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListQueueController pages through the human review queue.
type ListQueueController struct {
	UC *usecase.ReviewQueueUseCase
}

func NewListQueueController(pool *pgxpool.Pool) *ListQueueController {
	return &ListQueueController{UC: usecase.NewReviewQueueUseCase(adapter.NewPgModerationRepository(pool))}
}

func (h *ListQueueController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		limit, offset := pageParams(c)
		page, err := h.UC.List(ctx, c.DefaultQuery("status", moderation.QueuePending), limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		items := make([]queueItemResponse, 0, len(page.Items))
		for _, item := range page.Items {
			items = append(items, toQueueItemResponse(item))
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "total": page.Total})
	}
}

// ClaimQueueItemController assigns a pending item to the calling moderator.
type ClaimQueueItemController struct {
	UC *usecase.ReviewQueueUseCase
}

func NewClaimQueueItemController(pool *pgxpool.Pool) *ClaimQueueItemController {
	return &ClaimQueueItemController{UC: usecase.NewReviewQueueUseCase(adapter.NewPgModerationRepository(pool))}
}

func (h *ClaimQueueItemController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Claim(ctx, c.Param("itemId"), c.GetString(middleware.CtxUserID)); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": moderation.QueueInProgress})
	}
}

// DecideQueueItemController records a moderation verdict on a claimed item.
type DecideQueueItemController struct {
	UC *usecase.ReviewQueueUseCase
}

func NewDecideQueueItemController(pool *pgxpool.Pool) *DecideQueueItemController {
	return &DecideQueueItemController{UC: usecase.NewReviewQueueUseCase(adapter.NewPgModerationRepository(pool))}
}

type decideRequest struct {
	Decision string `json:"decision" binding:"required"`
	Reason   string `json:"reason"`
}

func (h *DecideQueueItemController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req decideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := h.UC.Decide(ctx, c.Param("itemId"), c.GetString(middleware.CtxUserID), req.Decision, req.Reason); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": moderation.QueueCompleted})
	}
}
