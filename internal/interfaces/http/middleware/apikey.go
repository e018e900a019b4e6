package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// API key context keys
const (
	APIKeyHeaderKey = "X-API-Key"
	APIKeyIDKey     = "api_key_id"
	APIKeyScopesKey = "api_key_scopes"
)

// APIKeyAuthenticator validates a plaintext API key
type APIKeyAuthenticator interface {
	Authenticate(ctx context.Context, plaintext string) (*identity.APIKey, error)
}

// AdminAuth authenticates admin requests. Requests carrying an
// X-API-Key header are validated against the stored keys and the key's
// scopes take the place of role permissions; everything else goes
// through the JWT path.
func AdminAuth(apiKeys APIKeyAuthenticator, jwtCfg JWTConfig) gin.HandlerFunc {
	jwtHandler := JWTAuth(jwtCfg)

	return func(c *gin.Context) {
		plaintext := c.GetHeader(APIKeyHeaderKey)
		if plaintext == "" {
			jwtHandler(c)
			return
		}

		key, err := apiKeys.Authenticate(c.Request.Context(), plaintext)
		if err != nil {
			requestID := c.GetString(RequestIDKey)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Invalid API key", requestID))
			return
		}

		c.Set(APIKeyIDKey, key.ID.String())
		c.Set(APIKeyScopesKey, key.ScopeList())

		c.Next()
	}
}

// GetAPIKeyScopes returns the scopes of the authenticated API key, or
// nil when the request authenticated with a JWT
func GetAPIKeyScopes(c *gin.Context) ([]string, bool) {
	v, exists := c.Get(APIKeyScopesKey)
	if !exists {
		return nil, false
	}
	scopes, ok := v.([]string)
	return scopes, ok
}
