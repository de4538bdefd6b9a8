package middleware

import (
	"net/http"
	"strings"

	"github.com/fuga-catalog/catalog/internal/auth/jwt"
	"github.com/fuga-catalog/catalog/internal/common/cnst"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

const claimsContextKey = "claims"

// Auth creates a middleware that validates bearer tokens and attaches the
// claims to the request context.
func Auth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorx.NewUnauthorized("Missing or invalid authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorx.NewUnauthorized("Missing or invalid authorization header"))
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorx.NewUnauthorized("Invalid or expired token"))
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequirePermission creates a middleware that rejects requests whose claims
// do not carry the given permission key. Pure predicate over the claims.
func RequirePermission(key cnst.PermissionKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorx.NewUnauthorized("Not authenticated"))
			return
		}
		if !claims.HasPermission(string(key)) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				errorx.NewForbidden("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the validated claims attached by Auth, or nil.
func ClaimsFromContext(c *gin.Context) *jwt.Claims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
