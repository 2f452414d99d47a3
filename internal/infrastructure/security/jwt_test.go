package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	token, expiry, err := svc.GenerateAccessToken("user-1", "contractor", true)
	require.NoError(t, err)
	assert.True(t, expiry.After(time.Now()))

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "contractor", claims.UserType)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "access", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	token, _, err := svc.GenerateRefreshToken("user-1", "client", false)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Subject)
}

func TestWrongKeyRejected(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTService("different-secret", time.Hour, 24*time.Hour)

	token, _, err := svc.GenerateAccessToken("user-1", "client", false)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, 24*time.Hour)

	token, _, err := svc.GenerateAccessToken("user-1", "client", false)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	a, _, err := svc.GenerateAccessToken("user-1", "client", false)
	require.NoError(t, err)
	b, _, err := svc.GenerateAccessToken("user-1", "client", false)
	require.NoError(t, err)

	ca, err := svc.ValidateAccessToken(a)
	require.NoError(t, err)
	cb, err := svc.ValidateAccessToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.TokenID, cb.TokenID)
}
