package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/adapter"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, notifications.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

type notificationResponse struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	RelatedKind string         `json:"related_kind,omitempty"`
	RelatedID   *string        `json:"related_id,omitempty"`
	ExtraData   map[string]any `json:"extra_data,omitempty"`
	IsRead      bool           `json:"is_read"`
	ReadAt      *time.Time     `json:"read_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toNotificationResponse(n *notifications.Notification) notificationResponse {
	return notificationResponse{
		ID:          n.ID,
		Kind:        n.Kind,
		Title:       n.Title,
		Message:     n.Message,
		RelatedKind: n.RelatedKind,
		RelatedID:   n.RelatedID,
		ExtraData:   n.ExtraData,
		IsRead:      n.IsRead,
		ReadAt:      n.ReadAt,
		CreatedAt:   n.CreatedAt,
	}
}

// ListNotificationsController serves the caller's inbox.
type ListNotificationsController struct {
	UC *usecase.ListNotificationsUseCase
}

func NewListNotificationsController(pool *pgxpool.Pool) *ListNotificationsController {
	return &ListNotificationsController{UC: usecase.NewListNotificationsUseCase(adapter.NewPgNotificationRepository(pool))}
}

func (h *ListNotificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := 20, 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}
		unreadOnly := c.Query("unread") == "true"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		page, err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID), unreadOnly, limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]notificationResponse, 0, len(page.Notifications))
		for i := range page.Notifications {
			out = append(out, toNotificationResponse(&page.Notifications[i]))
		}
		c.JSON(http.StatusOK, gin.H{
			"notifications": out,
			"total":         page.Total,
			"unread":        page.Unread,
		})
	}
}

// MarkReadController marks selected notifications, or all, as read.
type MarkReadController struct {
	UC *usecase.MarkReadUseCase
}

func NewMarkReadController(pool *pgxpool.Pool) *MarkReadController {
	return &MarkReadController{UC: usecase.NewMarkReadUseCase(adapter.NewPgNotificationRepository(pool))}
}

type markReadRequest struct {
	IDs []string `json:"ids"`
}

func (h *MarkReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		// An empty or absent body means "mark everything".
		var req markReadRequest
		_ = c.ShouldBindJSON(&req)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		n, err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID), req.IDs)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"marked": n})
	}
}

// GetPreferencesController serves the caller's delivery preferences.
type GetPreferencesController struct {
	UC *usecase.PreferencesUseCase
}

func NewGetPreferencesController(pool *pgxpool.Pool) *GetPreferencesController {
	return &GetPreferencesController{UC: usecase.NewPreferencesUseCase(adapter.NewPgNotificationRepository(pool))}
}

func (h *GetPreferencesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		prefs, err := h.UC.Get(ctx, c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, prefs)
	}
}

// UpdatePreferencesController replaces the caller's delivery preferences.
type UpdatePreferencesController struct {
	UC *usecase.PreferencesUseCase
}

func NewUpdatePreferencesController(pool *pgxpool.Pool) *UpdatePreferencesController {
	return &UpdatePreferencesController{UC: usecase.NewPreferencesUseCase(adapter.NewPgNotificationRepository(pool))}
}

func (h *UpdatePreferencesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var prefs notifications.Preferences
		if err := c.ShouldBindJSON(&prefs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		prefs.UserID = c.GetString(middleware.CtxUserID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		updated, err := h.UC.Update(ctx, prefs)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
