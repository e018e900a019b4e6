package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// RequireStaff rejects requests whose token does not carry the staff
// flag. It must run after JWTAuth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, "Authentication required")
			return
		}
		if !claims.IsStaff {
			abortForbidden(c, "Staff access required")
			return
		}
		c.Next()
	}
}

// RequirePermission gates a route on any of the given permission codes.
// JWT requests carry permission codes embedded at login; API key
// requests carry the key's scopes. It must run after AdminAuth or
// JWTAuth.
func RequirePermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if scopes, ok := GetAPIKeyScopes(c); ok {
			if len(permissions) > 0 && !containsAny(scopes, permissions) {
				abortForbidden(c, "API key lacks the required scope")
			} else {
				c.Next()
			}
			return
		}

		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, "Authentication required")
			return
		}
		if !claims.IsStaff {
			abortForbidden(c, "Staff access required")
			return
		}
		if len(permissions) > 0 && !claims.HasAnyPermission(permissions...) {
			abortForbidden(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func abortForbidden(c *gin.Context, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, message, requestID))
}
