package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
)

// fakeUserRepo is an in-memory UserRepository for use case tests.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*accounts.User
	byEmail map[string]string
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*accounts.User{}, byEmail: map[string]string{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u accounts.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[u.Email]; exists {
		return "", accounts.ErrDuplicate
	}
	f.seq++
	u.ID = "user-" + string(rune('0'+f.seq))
	f.users[u.ID] = &u
	f.byEmail[u.Email] = u.ID
	return u.ID, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*accounts.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, accounts.ErrNotFound
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*accounts.User, error) {
	f.mu.Lock()
	id, ok := f.byEmail[email]
	f.mu.Unlock()
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return f.GetUserByID(context.Background(), id)
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, u accounts.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return accounts.ErrNotFound
	}
	f.users[u.ID] = &u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return accounts.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) SetOnline(_ context.Context, userID string, online bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.IsOnline = online
	}
	return nil
}

func (f *fakeUserRepo) ListAddresses(context.Context, string) ([]accounts.Address, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetAddress(context.Context, string, string) (*accounts.Address, error) {
	return nil, accounts.ErrNotFound
}
func (f *fakeUserRepo) CreateAddress(context.Context, accounts.Address) (string, error) {
	return "addr-1", nil
}
func (f *fakeUserRepo) UpdateAddress(context.Context, accounts.Address) error { return nil }
func (f *fakeUserRepo) DeleteAddress(context.Context, string, string) error  { return nil }
func (f *fakeUserRepo) ProfileStats(context.Context, string) (*accounts.ProfileStats, error) {
	return &accounts.ProfileStats{}, nil
}

// fakeCache is an in-memory Cache for blacklist tests.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", cacheport.ErrMiss
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }

func testJWT() *security.JWTService {
	return security.NewJWTService("test-secret", time.Minute, time.Hour)
}

func registerTestUser(t *testing.T, repo *fakeUserRepo, jwtSvc *security.JWTService) *AuthResult {
	t.Helper()
	uc := NewRegisterUseCase(repo, security.NewBcryptService(), jwtSvc)
	result, err := uc.Execute(context.Background(), RegisterInput{
		Email:    "client@example.com",
		Password: "supersecret",
		UserType: "client",
	})
	require.NoError(t, err)
	return result
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()

	result := registerTestUser(t, repo, jwtSvc)

	assert.NotEmpty(t, result.User.ID)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, "supersecret", result.User.PasswordHash, "password must be hashed")

	claims, err := jwtSvc.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "client", claims.UserType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	registerTestUser(t, repo, jwtSvc)

	uc := NewRegisterUseCase(repo, security.NewBcryptService(), jwtSvc)
	_, err := uc.Execute(context.Background(), RegisterInput{
		Email:    "client@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, accounts.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	registered := registerTestUser(t, repo, jwtSvc)

	uc := NewLoginUseCase(repo, security.NewBcryptService(), jwtSvc)

	result, err := uc.Execute(context.Background(), "Client@Example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)

	stored, err := repo.GetUserByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOnline, "login marks the user online")

	_, err = uc.Execute(context.Background(), "client@example.com", "wrongpassword")
	assert.ErrorIs(t, err, accounts.ErrBadCredentials)

	_, err = uc.Execute(context.Background(), "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, accounts.ErrBadCredentials, "unknown email must not be distinguishable")
}

func TestLoginSuspendedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	registered := registerTestUser(t, repo, jwtSvc)

	repo.mu.Lock()
	repo.users[registered.User.ID].IsActive = false
	repo.mu.Unlock()

	uc := NewLoginUseCase(repo, security.NewBcryptService(), jwtSvc)
	_, err := uc.Execute(context.Background(), "client@example.com", "supersecret")
	assert.ErrorIs(t, err, accounts.ErrInactive)
}

func TestRefreshRotatesAndBlacklists(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	cache := newFakeCache()
	registered := registerTestUser(t, repo, jwtSvc)

	uc := NewRefreshTokenUseCase(repo, jwtSvc, cache)

	rotated, err := uc.Execute(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)

	// The consumed token must not be replayable.
	_, err = uc.Execute(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRejected)

	// An access token is never a valid refresh token.
	_, err = uc.Execute(context.Background(), registered.AccessToken)
	assert.ErrorIs(t, err, ErrTokenRejected)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	cache := newFakeCache()
	registered := registerTestUser(t, repo, jwtSvc)

	logout := NewLogoutUseCase(repo, jwtSvc, cache)
	require.NoError(t, logout.Execute(context.Background(), registered.User.ID, registered.RefreshToken))

	refresh := NewRefreshTokenUseCase(repo, jwtSvc, cache)
	_, err := refresh.Execute(context.Background(), registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRejected)

	stored, err := repo.GetUserByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsOnline)
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	cache := newFakeCache()
	registered := registerTestUser(t, repo, jwtSvc)

	logout := NewLogoutUseCase(repo, jwtSvc, cache)
	err := logout.Execute(context.Background(), "someone-else", registered.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRejected)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	registered := registerTestUser(t, repo, jwtSvc)

	uc := NewChangePasswordUseCase(repo, security.NewBcryptService())

	err := uc.Execute(context.Background(), registered.User.ID, "wrongpassword", "newpassword1")
	assert.ErrorIs(t, err, accounts.ErrBadCredentials)

	err = uc.Execute(context.Background(), registered.User.ID, "supersecret", "short")
	assert.ErrorIs(t, err, accounts.ErrWeakPassword)

	require.NoError(t, uc.Execute(context.Background(), registered.User.ID, "supersecret", "newpassword1"))

	login := NewLoginUseCase(repo, security.NewBcryptService(), jwtSvc)
	_, err = login.Execute(context.Background(), "client@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeUserRepo()
	jwtSvc := testJWT()
	registered := registerTestUser(t, repo, jwtSvc)

	uc := NewUpdateProfileUseCase(repo)

	bio := "Remodeling specialist"
	badPhone := "nope"
	_, err := uc.Execute(context.Background(), registered.User.ID, UpdateProfileInput{PhoneNumber: &badPhone})
	assert.ErrorIs(t, err, accounts.ErrInvalidPhone)

	updated, err := uc.Execute(context.Background(), registered.User.ID, UpdateProfileInput{
		Bio:    &bio,
		Skills: []string{"tiling", "plumbing"},
	})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, []string{"tiling", "plumbing"}, updated.Skills)
	assert.Equal(t, registered.User.Email, updated.Email, "untouched fields survive")
}
