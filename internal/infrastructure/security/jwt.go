package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the authenticated identity extracted from a verified token.
type TokenClaims struct {
	UserID    string
	UserType  string
	IsStaff   bool
	TokenID   string
	Subject   string
	ExpiresAt time.Time
}

type JWTService struct {
	secretKey     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

type claims struct {
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string, accessExpiry, refreshExpiry time.Duration) *JWTService {
	return &JWTService{
		secretKey:     secretKey,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (j *JWTService) GenerateAccessToken(userID, userType string, isStaff bool) (string, time.Time, error) {
	return j.generate(userID, userType, isStaff, "access", j.accessExpiry)
}

func (j *JWTService) GenerateRefreshToken(userID, userType string, isStaff bool) (string, time.Time, error) {
	return j.generate(userID, userType, isStaff, "refresh", j.refreshExpiry)
}

func (j *JWTService) generate(userID, userType string, isStaff bool, subject string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	c := &claims{
		UserID:   userID,
		UserType: userType,
		IsStaff:  isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	tokenStr, err := token.SignedString([]byte(j.secretKey))
	return tokenStr, c.ExpiresAt.Time, err
}

// ValidateAccessToken verifies signature and expiry and requires an access-subject token.
func (j *JWTService) ValidateAccessToken(tokenStr string) (*TokenClaims, error) {
	c, err := j.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if c.Subject != "access" {
		return nil, fmt.Errorf("invalid token type")
	}
	return c, nil
}

// ValidateRefreshToken verifies signature and expiry and requires a refresh-subject token.
func (j *JWTService) ValidateRefreshToken(tokenStr string) (*TokenClaims, error) {
	c, err := j.parse(tokenStr)
	if err != nil {
		return nil, err
	}
	if c.Subject != "refresh" {
		return nil, fmt.Errorf("invalid token type")
	}
	return c, nil
}

func (j *JWTService) parse(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.secretKey), nil
		})
	if err != nil {
		return nil, err
	}

	if c, ok := token.Claims.(*claims); ok && token.Valid {
		return &TokenClaims{
			UserID:    c.UserID,
			UserType:  c.UserType,
			IsStaff:   c.IsStaff,
			TokenID:   c.ID,
			Subject:   c.Subject,
			ExpiresAt: c.ExpiresAt.Time,
		}, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func newTokenID() string {
	return uuid.NewString()
}

// BlacklistKey is the cache key under which a revoked token id is stored
// until its natural expiry.
func BlacklistKey(tokenID string) string {
	return "auth:blacklist:" + tokenID
}
