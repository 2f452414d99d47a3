package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/port"
)

// MarkReadUseCase advances the caller's read watermark in a room.
type MarkReadUseCase struct {
	Repo repository.ChatRepository
}

func NewMarkReadUseCase(repo repository.ChatRepository) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, roomID, userID string, lastReadMsg *string) error {
	if err := uc.Repo.UpdateReadState(ctx, roomID, userID, lastReadMsg); err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return chat.ErrNotMember
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
