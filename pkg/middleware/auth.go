package middleware

import (
	"net/http"
	"strings"

	"vidshare/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey  = "user_id"
	IsAdminKey = "is_admin"

	// Legacy caller-asserted identity headers.
	HeaderUserID = "x-user-id"
	HeaderAdmin  = "x-admin"
)

// IdentityMiddleware resolves the caller without requiring one. A bearer token
// signed by jwtService wins; a presented but invalid token is rejected with 401.
// Without a token, and only when trustHeaders is set, the unverified x-user-id
// and x-admin headers are taken at face value.
func IdentityMiddleware(jwtService *jwt.Service, trustHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}

			claims, err := jwtService.ValidateToken(parts[1])
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				c.Abort()
				return
			}

			if claims.UserID != "" {
				c.Set(UserIDKey, claims.UserID)
			}
			c.Set(IsAdminKey, claims.Role == jwt.RoleAdmin)
			c.Next()
			return
		}

		if trustHeaders {
			// x-admin only counts alongside a caller id.
			if userID := strings.TrimSpace(c.GetHeader(HeaderUserID)); userID != "" {
				c.Set(UserIDKey, userID)
				c.Set(IsAdminKey, c.GetHeader(HeaderAdmin) == "true")
			}
		}

		c.Next()
	}
}

// CallerID returns the resolved caller id, or "" for anonymous requests.
func CallerID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// CallerIsAdmin reports whether the caller holds the admin capability.
func CallerIsAdmin(c *gin.Context) bool {
	return c.GetBool(IsAdminKey)
}
