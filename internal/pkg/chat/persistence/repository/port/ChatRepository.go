package repository

import (
	"context"
	"time"

	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for rooms, members and
// messages.
type ChatRepository interface {
	// CreateRoom stores the room and its initial members atomically.
	CreateRoom(ctx context.Context, r chat.Room, members []chat.Member) (string, error)
	GetRoom(ctx context.Context, roomID string) (*chat.Room, error)
	// FindDirectRoom returns an existing direct room between two users, or
	// ErrNotFound.
	FindDirectRoom(ctx context.Context, userA, userB string) (string, error)
	// ListRooms returns the user's rooms with last message and unread count.
	ListRooms(ctx context.Context, userID string) ([]chat.Room, error)

	GetSession(ctx context.Context, roomID string) (*chat.Session, error)
	IsMember(ctx context.Context, roomID, userID string) (bool, error)
	ListMemberIDs(ctx context.Context, roomID string) ([]string, error)
	AddMember(ctx context.Context, m chat.Member) error

	// SaveMessage persists a message. A dedupe key collision returns the
	// already-stored message id instead of a new row.
	SaveMessage(ctx context.Context, m chat.Message) (string, error)
	ListMessages(ctx context.Context, roomID string, limit, offset int) ([]chat.Message, error)

	UpdateReadState(ctx context.Context, roomID, userID string, lastReadMsg *string) error
	SetMuteUntil(ctx context.Context, roomID, userID string, mutedUntil *time.Time) error
}
