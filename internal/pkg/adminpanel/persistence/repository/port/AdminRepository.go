package repository

import (
	"context"

	adminpanel "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/adminpanel/application/domain"
)

// AdminRepository is the persistence port for the staff dashboard.
type AdminRepository interface {
	DashboardStats(ctx context.Context) (*adminpanel.DashboardStats, error)

	// ListUsers pages users, optionally filtered by a search term matched
	// against email, username and names.
	ListUsers(ctx context.Context, query string, limit, offset int) ([]adminpanel.UserSummary, int, error)

	// SetUserActive suspends or reactivates an account.
	SetUserActive(ctx context.Context, userID string, active bool) error

	// VerifyContractor marks a contractor account as verified.
	VerifyContractor(ctx context.Context, userID string) error

	// Ping checks database reachability for the health endpoint.
	Ping(ctx context.Context) error
}
