package usecase

import (
	"context"
	"fmt"

	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/persistence/repository/port"
)

// PreferencesUseCase reads and replaces a user's delivery preferences.
type PreferencesUseCase struct {
	Repo repository.NotificationRepository
}

func NewPreferencesUseCase(repo repository.NotificationRepository) *PreferencesUseCase {
	return &PreferencesUseCase{Repo: repo}
}

func (uc *PreferencesUseCase) Get(ctx context.Context, userID string) (*notifications.Preferences, error) {
	p, err := uc.Repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return p, nil
}

func (uc *PreferencesUseCase) Update(ctx context.Context, p notifications.Preferences) (*notifications.Preferences, error) {
	if err := uc.Repo.UpsertPreferences(ctx, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &p, nil
}
