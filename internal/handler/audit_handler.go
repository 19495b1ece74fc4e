package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/response"
)

type auditReader interface {
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// AuditHandler exposes the console's own journal.
type AuditHandler struct {
	reader auditReader
}

// NewAuditHandler constructs an AuditHandler. reader is nil when the journal is disabled.
func NewAuditHandler(reader auditReader) *AuditHandler {
	return &AuditHandler{reader: reader}
}

// Recent godoc
// @Summary Recent console actions
// @Tags Audit
// @Produce json
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /audit [get]
func (h *AuditHandler) Recent(c *gin.Context) {
	if h.reader == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "audit journal disabled"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.reader.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read audit journal"))
		return
	}
	response.JSON(c, http.StatusOK, entries, map[string]interface{}{"count": len(entries)})
}
