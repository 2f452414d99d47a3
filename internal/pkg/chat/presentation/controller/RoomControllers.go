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
	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/adapter"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, chat.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrNotMember), errors.Is(err, chat.ErrMuted):
		return http.StatusForbidden
	case errors.Is(err, chat.ErrRoomInactive):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

type messagePayload struct {
	ID             string    `json:"id"`
	RoomID         string    `json:"room_id"`
	SenderID       string    `json:"sender_id"`
	MsgType        int16     `json:"msg_type"`
	Body           *string   `json:"body,omitempty"`
	AttachmentURL  *string   `json:"attachment_url,omitempty"`
	AttachmentMeta *string   `json:"attachment_meta,omitempty"`
	ReplyTo        *string   `json:"reply_to,omitempty"`
	DedupeKey      *string   `json:"dedupe_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toMessagePayload(m chat.Message) messagePayload {
	return messagePayload{
		ID:             m.ID,
		RoomID:         m.RoomID,
		SenderID:       m.SenderID,
		MsgType:        int16(m.MsgType),
		Body:           m.Body,
		AttachmentURL:  m.AttachmentURL,
		AttachmentMeta: m.AttachmentMeta,
		ReplyTo:        m.ReplyTo,
		DedupeKey:      m.DedupeKey,
		CreatedAt:      m.CreatedAt,
	}
}

type roomResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name,omitempty"`
	RoomType    string          `json:"room_type"`
	ProjectID   *string         `json:"project_id,omitempty"`
	IsActive    bool            `json:"is_active"`
	UnreadCount int             `json:"unread_count"`
	LastMessage *messagePayload `json:"last_message,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toRoomResponse(r chat.Room) roomResponse {
	out := roomResponse{
		ID:          r.ID,
		Name:        r.Name,
		RoomType:    r.RoomType,
		ProjectID:   r.ProjectID,
		IsActive:    r.IsActive,
		UnreadCount: r.UnreadCount,
		CreatedAt:   r.CreatedAt,
	}
	if r.LastMessage != nil {
		p := toMessagePayload(*r.LastMessage)
		out.LastMessage = &p
	}
	return out
}

// CreateRoomController opens a conversation for the signed-in user.
type CreateRoomController struct {
	UC *usecase.CreateRoomUseCase
}

func NewCreateRoomController(pool *pgxpool.Pool) *CreateRoomController {
	return &CreateRoomController{UC: usecase.NewCreateRoomUseCase(repoAdapter.NewPgChatRepository(pool))}
}

type createRoomRequest struct {
	RoomType  string   `json:"room_type"`
	Name      string   `json:"name"`
	ProjectID *string  `json:"project_id"`
	MemberIDs []string `json:"member_ids" binding:"required"`
}

func (h *CreateRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		room, err := h.UC.Execute(ctx, usecase.CreateRoomInput{
			CreatorID: c.GetString(middleware.CtxUserID),
			RoomType:  req.RoomType,
			Name:      req.Name,
			ProjectID: req.ProjectID,
			MemberIDs: req.MemberIDs,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toRoomResponse(*room))
	}
}

// ListRoomsController lists the caller's rooms with unread counts.
type ListRoomsController struct {
	UC *usecase.ListRoomsUseCase
}

func NewListRoomsController(pool *pgxpool.Pool) *ListRoomsController {
	return &ListRoomsController{UC: usecase.NewListRoomsUseCase(repoAdapter.NewPgChatRepository(pool))}
}

func (h *ListRoomsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rooms, err := h.UC.Execute(ctx, c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]roomResponse, 0, len(rooms))
		for _, r := range rooms {
			out = append(out, toRoomResponse(r))
		}
		c.JSON(http.StatusOK, gin.H{"rooms": out})
	}
}

// GetMessagesController pages a room's history.
type GetMessagesController struct {
	UC *usecase.GetMessagesUseCase
}

func NewGetMessagesController(pool *pgxpool.Pool) *GetMessagesController {
	return &GetMessagesController{UC: usecase.NewGetMessagesUseCase(repoAdapter.NewPgChatRepository(pool))}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		msgs, err := h.UC.Execute(ctx, c.Param("roomId"), c.GetString(middleware.CtxUserID), limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]messagePayload, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, toMessagePayload(m))
		}
		c.JSON(http.StatusOK, gin.H{"messages": out})
	}
}

// MarkRoomReadController advances the caller's read watermark.
type MarkRoomReadController struct {
	UC *usecase.MarkReadUseCase
}

func NewMarkRoomReadController(pool *pgxpool.Pool) *MarkRoomReadController {
	return &MarkRoomReadController{UC: usecase.NewMarkReadUseCase(repoAdapter.NewPgChatRepository(pool))}
}

type markReadRequest struct {
	LastReadMsg *string `json:"last_read_msg"`
}

func (h *MarkRoomReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req markReadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, c.Param("roomId"), c.GetString(middleware.CtxUserID), req.LastReadMsg); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// MuteRoomController silences a room for the caller.
type MuteRoomController struct {
	UC *usecase.MuteRoomUseCase
}

func NewMuteRoomController(pool *pgxpool.Pool) *MuteRoomController {
	return &MuteRoomController{UC: usecase.NewMuteRoomUseCase(repoAdapter.NewPgChatRepository(pool))}
}

type muteRequest struct {
	MutedUntil *time.Time `json:"muted_until"`
}

func (h *MuteRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req muteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, c.Param("roomId"), c.GetString(middleware.CtxUserID), req.MutedUntil); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
