package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserID is the Gin context key holding the authenticated
// user's id, 0 when anonymous.
const ContextKeyUserID = "auth_user_id"

// AnonymousUserID marks a request without a valid session.
const AnonymousUserID = uint(0)

// ResolveUser returns a middleware that resolves the session cookie to a
// user id and stores it in the request context. Anonymous requests pass
// through with AnonymousUserID; resolution never fails a request.
func (sm *SessionManager) ResolveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, sm.UserID(c.Request))
		c.Next()
	}
}

// GetUserID extracts the authenticated user's id from the Gin context.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return AnonymousUserID
}

// RequireAuth redirects anonymous browser requests to /auth and rejects
// anonymous JSON requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) != AnonymousUserID {
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "application/json") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "authentication required",
			})
			return
		}

		c.Redirect(http.StatusFound, "/auth")
		c.Abort()
	}
}
