package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/port"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
)

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	RoomID         string
	SenderID       string
	Body           *string
	MsgType        chat.MessageType
	AttachmentURL  *string
	AttachmentMeta *string
	ReplyTo        *string
	DedupeKey      *string
}

// SendMessageUseCase persists a message after the room aggregate validates
// it. Members without a live socket get an inbox notification; IsOnline
// reports live sockets and may be nil (everyone treated as offline).
type SendMessageUseCase struct {
	Repo     repository.ChatRepository
	Queue    qport.Client
	IsOnline func(userID string) bool
}

func NewSendMessageUseCase(repo repository.ChatRepository, q qport.Client) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Queue: q}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.RoomID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("chat: roomId and senderId are required")
	}

	session, err := uc.Repo.GetSession(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	msg, err := session.PostMessage(chat.Message{
		RoomID:         in.RoomID,
		SenderID:       in.SenderID,
		Body:           in.Body,
		MsgType:        in.MsgType,
		AttachmentURL:  in.AttachmentURL,
		AttachmentMeta: in.AttachmentMeta,
		ReplyTo:        in.ReplyTo,
		DedupeKey:      in.DedupeKey,
	}, time.Now())
	if err != nil {
		return nil, err
	}

	id, err := uc.Repo.SaveMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	moderationtask.EnqueueScan(ctx, uc.Queue, "message", id)

	for userID := range session.Members {
		if userID == in.SenderID {
			continue
		}
		if uc.IsOnline != nil && uc.IsOnline(userID) {
			continue
		}
		notificationtask.EnqueueDeliver(ctx, uc.Queue, notificationtask.DeliverNotificationTaskPayload{
			UserID:      userID,
			Kind:        notifications.KindNewMessage,
			Title:       "New message",
			Message:     "You have a new chat message.",
			RelatedKind: "message",
			RelatedID:   &id,
		})
	}

	return &msg, nil
}
