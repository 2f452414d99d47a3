package usecase

import (
	"context"
	"fmt"

	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/port"
)

// ListRoomsUseCase returns the caller's rooms newest-activity first, each
// with its last message and unread count.
type ListRoomsUseCase struct {
	Repo repository.ChatRepository
}

func NewListRoomsUseCase(repo repository.ChatRepository) *ListRoomsUseCase {
	return &ListRoomsUseCase{Repo: repo}
}

func (uc *ListRoomsUseCase) Execute(ctx context.Context, userID string) ([]chat.Room, error) {
	rooms, err := uc.Repo.ListRooms(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if rooms == nil {
		rooms = []chat.Room{}
	}
	return rooms, nil
}
