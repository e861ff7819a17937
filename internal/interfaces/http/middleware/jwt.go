package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gymops/backend/internal/infrastructure/auth"
	"github.com/gymops/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	ContextKeyClaims   = "jwt_claims"
	ContextKeyUserID   = "jwt_user_id"
	ContextKeyTenantID = "jwt_tenant_id"
)

// JWTAuthConfig holds JWT authentication middleware configuration
type JWTAuthConfig struct {
	JWTService *auth.JWTService
	SkipPaths  []string
}

// JWTAuth returns a middleware that validates Bearer tokens and stores the
// authenticated tenant and user in the request context.
func JWTAuth(cfg JWTAuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "MISSING_TOKEN", "Authorization token is required")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			handleAuthError(c, err)
			return
		}

		tenantID, err := claims.GetTenantUUID()
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Token carries a malformed tenant ID")
			return
		}
		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthorized(c, "INVALID_TOKEN", "Token carries a malformed user ID")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyTenantID, tenantID)
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortUnauthorized(c, "TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortUnauthorized(c, "TOKEN_NOT_YET_VALID", "Token is not yet valid")
	case errors.Is(err, auth.ErrMissingTenantID), errors.Is(err, auth.ErrMissingUserID):
		abortUnauthorized(c, "INVALID_TOKEN", "Token is missing required claims")
	default:
		abortUnauthorized(c, "INVALID_TOKEN", "Token is invalid")
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTTenantID returns the authenticated tenant ID from the context
func GetJWTTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextKeyTenantID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetJWTUserID returns the authenticated user ID from the context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
