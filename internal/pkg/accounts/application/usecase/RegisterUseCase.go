package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/port"
)

// RegisterInput carries the data needed to open a new account.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
	UserType    string
}

// AuthResult is the authenticated session handed back after register,
// login and refresh.
type AuthResult struct {
	User          *accounts.User
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// RegisterUseCase creates an account and issues its first token pair.
type RegisterUseCase struct {
	Repo   repository.UserRepository
	Hasher *security.BcryptService
	JWT    *security.JWTService
}

func NewRegisterUseCase(repo repository.UserRepository, hasher *security.BcryptService, jwtSvc *security.JWTService) *RegisterUseCase {
	return &RegisterUseCase{Repo: repo, Hasher: hasher, JWT: jwtSvc}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := accounts.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	user, err := accounts.NewUser(accounts.User{
		Email:       in.Email,
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		UserType:    accounts.UserType(in.UserType),
	})
	if err != nil {
		return nil, err
	}

	user.PasswordHash, err = uc.Hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := uc.Repo.CreateUser(ctx, *user)
	if err != nil {
		if errors.Is(err, accounts.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	user.ID = id

	return issueTokens(uc.JWT, user)
}

func issueTokens(jwtSvc *security.JWTService, user *accounts.User) (*AuthResult, error) {
	access, accessExp, err := jwtSvc.GenerateAccessToken(user.ID, string(user.UserType), user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, refreshExp, err := jwtSvc.GenerateRefreshToken(user.ID, string(user.UserType), user.IsStaff)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &AuthResult{
		User:          user,
		AccessToken:   access,
		AccessExpiry:  accessExp,
		RefreshToken:  refresh,
		RefreshExpiry: refreshExp,
	}, nil
}
