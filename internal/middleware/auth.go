package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cacheport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/cache/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/security"
)

// Context keys set by JwtAuth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUserType = "user_type"
	CtxIsStaff  = "is_staff"
)

// JwtAuth authenticates requests with a Bearer access token. Revoked tokens
// (logout) are rejected via the cache-backed blacklist.
func JwtAuth(jwtService *security.JWTService, cache cacheport.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed Authorization header"})
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if _, err := cache.Get(c.Request.Context(), security.BlacklistKey(claims.TokenID)); err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		} else if !errors.Is(err, cacheport.ErrMiss) {
			// Cache unavailable: fail closed for revocable credentials.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authorization backend unavailable"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserType, claims.UserType)
		c.Set(CtxIsStaff, claims.IsStaff)
		c.Next()
	}
}

// StaffOnly allows only staff users through. Must run after JwtAuth.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsStaff) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

// ContractorOnly allows only contractor accounts through. Must run after JwtAuth.
func ContractorOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserType) != "contractor" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "contractor account required"})
			return
		}
		c.Next()
	}
}
