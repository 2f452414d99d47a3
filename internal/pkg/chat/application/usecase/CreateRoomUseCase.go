package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/persistence/repository/port"
)

// CreateRoomInput carries the data needed to open a room.
type CreateRoomInput struct {
	CreatorID string
	RoomType  string
	Name      string
	ProjectID *string
	MemberIDs []string
}

// CreateRoomUseCase opens a conversation. Direct rooms are deduplicated: a
// second request for the same pair returns the existing room.
type CreateRoomUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateRoomUseCase(repo repository.ChatRepository) *CreateRoomUseCase {
	return &CreateRoomUseCase{Repo: repo}
}

func (uc *CreateRoomUseCase) Execute(ctx context.Context, in CreateRoomInput) (*chat.Room, error) {
	if in.RoomType == "" {
		in.RoomType = chat.RoomDirect
	}
	if in.RoomType == chat.RoomDirect {
		if len(in.MemberIDs) != 1 {
			return nil, errors.New("chat: direct room needs exactly one other member")
		}
		if in.MemberIDs[0] == in.CreatorID {
			return nil, errors.New("chat: cannot open a direct room with yourself")
		}
		if id, err := uc.Repo.FindDirectRoom(ctx, in.CreatorID, in.MemberIDs[0]); err == nil {
			return uc.getRoom(ctx, id)
		} else if !errors.Is(err, chat.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	room, err := chat.NewRoom(chat.Room{
		Name:      in.Name,
		RoomType:  in.RoomType,
		ProjectID: in.ProjectID,
		CreatedBy: &in.CreatorID,
	})
	if err != nil {
		return nil, err
	}

	members := []chat.Member{{UserID: in.CreatorID, Role: chat.RoleOwner}}
	for _, id := range in.MemberIDs {
		if id == in.CreatorID {
			continue
		}
		members = append(members, chat.Member{UserID: id, Role: chat.RoleMember})
	}

	id, err := uc.Repo.CreateRoom(ctx, *room, members)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return uc.getRoom(ctx, id)
}

func (uc *CreateRoomUseCase) getRoom(ctx context.Context, id string) (*chat.Room, error) {
	room, err := uc.Repo.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return room, nil
}
