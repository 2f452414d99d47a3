package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/port"
)

// MuteRoomUseCase silences a room for the caller until the given time.
// A nil until lifts the mute.
type MuteRoomUseCase struct {
	Repo repository.ChatRepository
}

func NewMuteRoomUseCase(repo repository.ChatRepository) *MuteRoomUseCase {
	return &MuteRoomUseCase{Repo: repo}
}

func (uc *MuteRoomUseCase) Execute(ctx context.Context, roomID, userID string, until *time.Time) error {
	if err := uc.Repo.SetMuteUntil(ctx, roomID, userID, until); err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return chat.ErrNotMember
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
