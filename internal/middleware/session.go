package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookline/api/internal/models"
)

// Gin context keys populated by Session.
const (
	ContextSessionID = "session_id"
	ContextUserID    = "user_id"
	ContextSession   = "session"
)

// SessionStore is the subset of the session repository the middleware
// needs; tests swap in fakes.
type SessionStore interface {
	GetValid(ctx context.Context, sid string) (models.Session, error)
}

// Session attaches the authenticated identity to the request context
// when a valid session cookie is present. It never aborts: routes that
// require authentication stack RequireAuth on top.
func Session(cookieName string, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err == nil && sid != "" {
			if session, err := sessions.GetValid(c.Request.Context(), sid); err == nil {
				c.Set(ContextSessionID, session.SID)
				c.Set(ContextUserID, session.Data.UserID)
				c.Set(ContextSession, session)
			}
		}

		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}
