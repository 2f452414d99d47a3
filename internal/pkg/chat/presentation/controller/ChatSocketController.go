package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/realtime"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/adapter"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/port"
)

// ChatSocketController handles the websocket endpoint for realtime chat traffic.
type ChatSocketController struct {
	router          *realtime.Router
	repo            repository.ChatRepository
	sendMessageUC   *usecase.SendMessageUseCase
	inflightTimeout time.Duration
}

func NewChatSocketController(pool *pgxpool.Pool, q qport.Client, router *realtime.Router) *ChatSocketController {
	repo := repoAdapter.NewPgChatRepository(pool)
	sendUC := usecase.NewSendMessageUseCase(repo, q)
	// Members with a live socket get the frame directly; skip their inbox.
	sendUC.IsOnline = router.IsOnline
	return &ChatSocketController{
		router:          router,
		repo:            repo,
		sendMessageUC:   sendUC,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Token auth happens before the upgrade; origin is not restricted.
		return true
	},
}

type inboundFrame struct {
	Type           string  `json:"type"`
	RoomID         string  `json:"room_id,omitempty"`
	Body           *string `json:"body,omitempty"`
	MsgType        *int16  `json:"msg_type,omitempty"`
	AttachmentURL  *string `json:"attachment_url,omitempty"`
	AttachmentMeta *string `json:"attachment_meta,omitempty"`
	ReplyTo        *string `json:"reply_to,omitempty"`
	DedupeKey      *string `json:"dedupe_key,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id,omitempty"`
}

type outboundMessage struct {
	Type    string         `json:"type"`
	RoomID  string         `json:"room_id"`
	Message messagePayload `json:"message"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.CtxUserID)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		handshakeAck := ackFrame{Type: "connected"}
		if payload, err := json.Marshal(handshakeAck); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(c, conn, frame)
			case "leave":
				ctl.handleLeave(conn, frame)
			case "message":
				ctl.handleMessage(c, conn, userID, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "room_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	ok, err := ctl.repo.IsMember(ctx, frame.RoomID, conn.UserID)
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}
	if !ok {
		ctl.handleUseCaseError(conn, chat.ErrNotMember)
		return
	}
	ctl.router.Join(frame.RoomID, conn)

	ack := ackFrame{Type: "joined", RoomID: frame.RoomID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "room_id is required")
		return
	}
	ctl.router.Leave(frame.RoomID, conn)

	ack := ackFrame{Type: "left", RoomID: frame.RoomID}
	if payload, err := json.Marshal(ack); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) handleMessage(c *gin.Context, conn *realtime.Connection, userID string, frame inboundFrame) {
	if frame.RoomID == "" {
		ctl.replyError(conn, "bad_request", "room_id is required")
		return
	}

	msgType := chat.MessageTypeText
	if frame.MsgType != nil {
		msgType = chat.MessageType(*frame.MsgType)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	result, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		RoomID:         frame.RoomID,
		SenderID:       userID,
		Body:           frame.Body,
		MsgType:        msgType,
		AttachmentURL:  frame.AttachmentURL,
		AttachmentMeta: frame.AttachmentMeta,
		ReplyTo:        frame.ReplyTo,
		DedupeKey:      frame.DedupeKey,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	out := outboundMessage{
		Type:    "message",
		RoomID:  frame.RoomID,
		Message: toMessagePayload(*result),
	}

	payload, err := json.Marshal(out)
	if err != nil {
		ctl.replyError(conn, "internal_error", "failed to encode message")
		return
	}

	members, err := ctl.repo.ListMemberIDs(ctx, frame.RoomID)
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	delivered := ctl.router.Broadcast(frame.RoomID, payload, userID)

	if !ctl.router.NotifyUser(userID, payload) {
		_ = conn.Send(payload)
	}

	ctl.forwardToPeerNodes(members, userID, payload, delivered)
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{
		Type:  "error",
		Code:  code,
		Error: message,
	}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) forwardToPeerNodes(members []string, senderID string, payload []byte, delivered int) {
	expected := 0
	for _, id := range members {
		if id == senderID {
			continue
		}
		expected++
	}
	if delivered >= expected {
		return
	}
	// TODO: integrate pub/sub (e.g., Redis, NATS) to deliver payload to members connected on other nodes.
	_ = payload
}

func (ctl *ChatSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	case errors.Is(err, chat.ErrNotMember):
		ctl.replyError(conn, "forbidden", "user is not a member of this room")
	case errors.Is(err, chat.ErrMuted):
		ctl.replyError(conn, "forbidden", "room is muted for this user")
	case errors.Is(err, chat.ErrNotFound):
		ctl.replyError(conn, "not_found", "room not found")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}
