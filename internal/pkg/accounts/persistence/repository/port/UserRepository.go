package repository

import (
	"context"

	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
)

// UserRepository defines persistence operations for the accounts domain.
type UserRepository interface {
	CreateUser(ctx context.Context, u accounts.User) (string, error)
	GetUserByID(ctx context.Context, id string) (*accounts.User, error)
	GetUserByEmail(ctx context.Context, email string) (*accounts.User, error)
	UpdateProfile(ctx context.Context, u accounts.User) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
	SetOnline(ctx context.Context, userID string, online bool) error

	ListAddresses(ctx context.Context, userID string) ([]accounts.Address, error)
	GetAddress(ctx context.Context, userID, addressID string) (*accounts.Address, error)
	CreateAddress(ctx context.Context, a accounts.Address) (string, error)
	UpdateAddress(ctx context.Context, a accounts.Address) error
	DeleteAddress(ctx context.Context, userID, addressID string) error

	ProfileStats(ctx context.Context, userID string) (*accounts.ProfileStats, error)
}
