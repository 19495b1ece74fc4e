package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/response"
)

// RequireRoles only lets sessions holding one of roles through. It must run
// after RequireSession.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		current, ok := SessionFromContext(c)
		if !ok {
			response.Error(c, appErrors.ErrNoSession)
			c.Abort()
			return
		}
		if _, ok := allowed[current.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
