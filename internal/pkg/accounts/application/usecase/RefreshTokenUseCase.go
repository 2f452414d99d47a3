package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

// ErrTokenRejected covers expired, revoked and malformed refresh tokens.
var ErrTokenRejected = fmt.Errorf("accounts: refresh token rejected")

// RefreshTokenUseCase rotates a refresh token into a fresh token pair.
// The consumed token is blacklisted until its natural expiry so it cannot
// be replayed.
type RefreshTokenUseCase struct {
	Repo  repository.UserRepository
	JWT   *security.JWTService
	Cache cacheport.Cache
}

func NewRefreshTokenUseCase(repo repository.UserRepository, jwtSvc *security.JWTService, cache cacheport.Cache) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{Repo: repo, JWT: jwtSvc, Cache: cache}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := uc.JWT.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrTokenRejected
	}

	key := security.BlacklistKey(claims.TokenID)
	if _, err := uc.Cache.Get(ctx, key); err == nil {
		return nil, ErrTokenRejected
	} else if !errors.Is(err, cacheport.ErrMiss) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Re-read the account so rotated tokens carry fresh role and staff flags.
	user, err := uc.Repo.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, accounts.ErrNotFound) {
		return nil, ErrTokenRejected
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !user.IsActive {
		return nil, accounts.ErrInactive
	}

	if err := uc.Cache.Set(ctx, key, "rotated", time.Until(claims.ExpiresAt)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return issueTokens(uc.JWT, user)
}
