package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sheeto/backend/internal/domain/identity"
	"github.com/sheeto/backend/internal/infrastructure/auth"
	"github.com/sheeto/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// RequireAuth validates the bearer token and stores its claims in the
// request context. Requests without a valid token get 401.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth stores claims when a valid bearer token is present and
// continues anonymously otherwise. An invalid token is still rejected;
// silently downgrading a bad token to anonymous would mask client bugs.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AuthHeaderKey) == "" {
			c.Next()
			return
		}
		claims, err := authenticate(c, jwtService)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != identity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden,
				"Admin access required",
				c.GetString("request_id"),
			))
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(header, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}
	return jwtService.ValidateToken(tokenString)
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTRoleKey, claims.Role)
}

func abortUnauthorized(c *gin.Context, err error) {
	code := dto.ErrCodeUnauthorized
	message := "Authentication required"
	if errors.Is(err, auth.ErrExpiredToken) {
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		code,
		message,
		c.GetString("request_id"),
	))
}

// GetJWTUserID returns the authenticated user ID, or uuid.Nil for
// anonymous requests
func GetJWTUserID(c *gin.Context) uuid.UUID {
	raw := c.GetString(JWTUserIDKey)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetJWTRole returns the authenticated user's role, or empty for
// anonymous requests
func GetJWTRole(c *gin.Context) identity.Role {
	value, exists := c.Get(JWTRoleKey)
	if !exists {
		return ""
	}
	role, ok := value.(identity.Role)
	if !ok {
		return ""
	}
	return role
}

// GetClaims returns the full JWT claims for the request, if authenticated
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
