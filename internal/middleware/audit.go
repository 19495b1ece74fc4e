package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/models"
)

// AuditRecorder journals console actions.
type AuditRecorder interface {
	Record(entry models.AuditEntry)
}

// Audit creates a middleware that records audit entries after successful requests.
// A resource named by the handler wins over resource; when both are empty the
// :entity route parameter is used.
func Audit(recorder AuditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		loginID := ""
		if current, ok := SessionFromContext(c); ok {
			loginID = current.LoginID
		}
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		if v, ok := c.Get(ContextAuditLoginKey); ok {
			if id, isString := v.(string); isString && id != "" {
				loginID = id
			}
		}

		target := resource
		if v, ok := c.Get(ContextAuditResourceKey); ok {
			if name, isString := v.(string); isString && name != "" {
				target = name
			}
		}
		if target == "" {
			target = c.Param("entity")
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		entry := models.AuditEntry{
			Action:    action,
			Resource:  target,
			Detail:    body,
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}
		if loginID != "" {
			entry.LoginID = &loginID
		}
		recorder.Record(entry)
	}
}

// Keys a handler may set to refine the audit entry of its request.
const (
	// ContextAuditLoginKey names the actor when no session existed before the
	// request, as on login.
	ContextAuditLoginKey = "auditLoginID"
	// ContextAuditResourceKey names the resource when the route alone does
	// not tell, as on create.
	ContextAuditResourceKey = "auditResource"
)
