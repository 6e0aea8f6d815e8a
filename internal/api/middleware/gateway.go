package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts user info from gateway headers (X-User-ID, X-User-Email, X-User-Role).
// This is used when the API runs behind the game gateway, which handles sign-in
// for players.
//
// When AUTH_MODE=gateway, the API trusts these headers unconditionally.
// This should ONLY be used with proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.GetHeader("X-User-ID")
		if userIDStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			c.Abort()
			return
		}

		// Numeric IDs are kept as uint; anything else only as the string form
		var userID uint
		if id, err := strconv.ParseUint(userIDStr, 10, 64); err == nil {
			userID = uint(id)
		}

		c.Set("user_id", userID)
		c.Set("user_id_str", userIDStr)
		c.Set("user_email", c.GetHeader("X-User-Email"))
		c.Set("user_role", c.GetHeader("X-User-Role"))

		c.Next()
	}
}

// GetUserIDFromGateway retrieves the user ID set by an auth middleware
func GetUserIDFromGateway(c *gin.Context) (string, bool) {
	userIDStr, exists := c.Get("user_id_str")
	if !exists {
		return "", false
	}
	id, ok := userIDStr.(string)
	return id, ok
}

// GetUserRoleFromGateway retrieves the user role from gateway headers
func GetUserRoleFromGateway(c *gin.Context) (string, bool) {
	role, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}
