package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/middleware"
	"github.com/noah-isme/internship-admin/internal/service"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
)

func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

// optionalID reads a positive id query parameter; blank means no filter.
func optionalID(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" filter")
	}
	return &id, nil
}

// confirmer maps ?confirm=true onto an approved prompt.
func confirmer(c *gin.Context) service.Confirmer {
	if ok, _ := strconv.ParseBool(c.Query("confirm")); ok {
		return service.Approve
	}
	return service.Decline
}

func setAuditLogin(c *gin.Context, loginID string) {
	c.Set(middleware.ContextAuditLoginKey, loginID)
}
