package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

// LoginUseCase authenticates credentials and issues a token pair.
type LoginUseCase struct {
	Repo   repository.UserRepository
	Hasher *security.BcryptService
	JWT    *security.JWTService
}

func NewLoginUseCase(repo repository.UserRepository, hasher *security.BcryptService, jwtSvc *security.JWTService) *LoginUseCase {
	return &LoginUseCase{Repo: repo, Hasher: hasher, JWT: jwtSvc}
}

func (uc *LoginUseCase) Execute(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, accounts.ErrBadCredentials
	}

	user, err := uc.Repo.GetUserByEmail(ctx, email)
	if errors.Is(err, accounts.ErrNotFound) {
		return nil, accounts.ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !uc.Hasher.Compare(user.PasswordHash, password) {
		return nil, accounts.ErrBadCredentials
	}
	if !user.IsActive {
		return nil, accounts.ErrInactive
	}

	// Presence is advisory; a failure here must not block the login.
	if err := uc.Repo.SetOnline(ctx, user.ID, true); err != nil {
		logger.Warningf("login: set online for %s: %v", user.ID, err)
	}

	return issueTokens(uc.JWT, user)
}
