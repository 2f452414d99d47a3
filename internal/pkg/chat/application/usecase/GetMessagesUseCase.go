package usecase

import (
	"context"
	"fmt"

	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesUseCase pages a room's history, newest first. Only members may
// read.
type GetMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesUseCase(repo repository.ChatRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, roomID, userID string, limit, offset int) ([]chat.Message, error) {
	isMember, err := uc.Repo.IsMember(ctx, roomID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !isMember {
		return nil, chat.ErrNotMember
	}

	msgs, err := uc.Repo.ListMessages(ctx, roomID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if msgs == nil {
		msgs = []chat.Message{}
	}
	return msgs, nil
}
