package usecase

import (
	"context"
	"fmt"
	"time"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

// LogoutUseCase revokes the session's refresh token and marks the user offline.
type LogoutUseCase struct {
	Repo  repository.UserRepository
	JWT   *security.JWTService
	Cache cacheport.Cache
}

func NewLogoutUseCase(repo repository.UserRepository, jwtSvc *security.JWTService, cache cacheport.Cache) *LogoutUseCase {
	return &LogoutUseCase{Repo: repo, JWT: jwtSvc, Cache: cache}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, userID, refreshToken string) error {
	claims, err := uc.JWT.ValidateRefreshToken(refreshToken)
	if err != nil {
		return ErrTokenRejected
	}
	if claims.UserID != userID {
		return ErrTokenRejected
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	if err := uc.Cache.Set(ctx, security.BlacklistKey(claims.TokenID), "revoked", ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := uc.Repo.SetOnline(ctx, userID, false); err != nil {
		logger.Warningf("logout: set offline for %s: %v", userID, err)
	}
	return nil
}
