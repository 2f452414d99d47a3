package usecase

import (
	"context"
	"errors"
	"fmt"

	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

// UpdateProfileInput holds the editable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	FirstName       *string
	LastName        *string
	PhoneNumber     *string
	Bio             *string
	Location        *string
	Skills          []string
	HourlyRate      *string
	ExperienceYears *int
	AvatarURL       *string
}

type UpdateProfileUseCase struct {
	Repo repository.UserRepository
}

func NewUpdateProfileUseCase(repo repository.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{Repo: repo}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID string, in UpdateProfileInput) (*accounts.User, error) {
	user, err := uc.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		if err := accounts.ValidatePhone(in.PhoneNumber); err != nil {
			return nil, err
		}
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Bio != nil {
		if len(*in.Bio) > 500 {
			return nil, accounts.ErrBioTooLong
		}
		user.Bio = *in.Bio
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Skills != nil {
		user.Skills = in.Skills
	}
	if in.HourlyRate != nil {
		user.HourlyRate = *in.HourlyRate
	}
	if in.ExperienceYears != nil {
		user.ExperienceYears = *in.ExperienceYears
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}

	if err := uc.Repo.UpdateProfile(ctx, *user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}
