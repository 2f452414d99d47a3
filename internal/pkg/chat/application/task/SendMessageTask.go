package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/usecase"
	repoAdapter "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/adapter"
)

// SendMessageTaskType is the queue task name for persisting a chat message.
const SendMessageTaskType = "chat:send_message"

// SendMessageTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type SendMessageTaskPayload struct {
	RoomID         string  `json:"roomId"`
	SenderID       string  `json:"senderId"`
	Body           *string `json:"body"`
	MsgType        int16   `json:"msgType"`
	AttachmentURL  *string `json:"attachmentUrl"`
	AttachmentMeta *string `json:"attachmentMeta"`
	ReplyTo        *string `json:"replyTo"`
	DedupeKey      *string `json:"dedupeKey"`
}

// RegisterSendMessageTask binds the task handler to the provided server.
// Delivery notifications ride the same queue client.
func RegisterSendMessageTask(srv qport.Server, pool *pgxpool.Pool, q qport.Client) {
	srv.Register(SendMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		uc := usecase.NewSendMessageUseCase(repoAdapter.NewPgChatRepository(pool), q)

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.SendMessageInput{
			RoomID:         p.RoomID,
			SenderID:       p.SenderID,
			Body:           p.Body,
			MsgType:        chat.MessageType(p.MsgType),
			AttachmentURL:  p.AttachmentURL,
			AttachmentMeta: p.AttachmentMeta,
			ReplyTo:        p.ReplyTo,
			DedupeKey:      p.DedupeKey,
		})
		return err
	})
}
