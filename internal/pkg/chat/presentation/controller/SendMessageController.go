package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	queueport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/task"
)

// SendMessageController handles the send-message endpoint only (one controller per endpoint)
type SendMessageController struct {
	Q queueport.Client
}

func NewSendMessageController(client queueport.Client) *SendMessageController {
	return &SendMessageController{Q: client}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	Body           *string `json:"body"`
	MsgType        *int16  `json:"msg_type"`
	AttachmentURL  *string `json:"attachment_url"`
	AttachmentMeta *string `json:"attachment_meta"`
	ReplyTo        *string `json:"reply_to"`
	DedupeKey      *string `json:"dedupe_key"`
}

// Handle returns a gin handler that enqueues a background task to send a message
func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomId")
		if roomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msgType := int16(0) // default to text, mapped in worker
		if req.MsgType != nil {
			msgType = *req.MsgType
		}

		payload := task.SendMessageTaskPayload{
			RoomID:         roomID,
			SenderID:       c.GetString(middleware.CtxUserID),
			Body:           req.Body,
			MsgType:        msgType,
			AttachmentURL:  req.AttachmentURL,
			AttachmentMeta: req.AttachmentMeta,
			ReplyTo:        req.ReplyTo,
			DedupeKey:      req.DedupeKey,
		}
		b, err := json.Marshal(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		// Enqueue task; best-effort options
		opts := queueport.EnqueueOption{Queue: "chat", MaxRetry: 20}
		id, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.SendMessageTaskType, Payload: b}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue message"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "queued",
			"task_id": id,
			"room_id": roomID,
		})
	}
}
