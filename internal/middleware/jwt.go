package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/response"
	"github.com/noah-isme/internship-admin/pkg/session"
)

// ContextSessionKey is the gin context key storing the session snapshot.
const ContextSessionKey = "consoleSession"

// SessionSource exposes the console's current login.
type SessionSource interface {
	Current() session.Session
}

// RequireSession blocks routes until an administrator has logged in. The
// token's exp claim is only checked when present; the API remains the
// authority on validity.
func RequireSession(sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := sessions.Current()
		if !current.Active() {
			response.Error(c, appErrors.ErrNoSession)
			c.Abort()
			return
		}
		if current.Expired(time.Now()) {
			response.Error(c, appErrors.Clone(appErrors.ErrNoSession, "session expired, please log in again"))
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, current)
		c.Next()
	}
}

// SessionFromContext returns the snapshot stored by RequireSession.
func SessionFromContext(c *gin.Context) (session.Session, bool) {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return session.Session{}, false
	}
	current, ok := value.(session.Session)
	return current, ok
}
