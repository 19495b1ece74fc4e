package handler

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/middleware"
	"github.com/noah-isme/internship-admin/internal/service"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/export"
	"github.com/noah-isme/internship-admin/pkg/response"
)

type exportService interface {
	Render(ctx context.Context, req service.ExportRequest) (*service.ExportResult, error)
}

// ExportHandler renders list views as downloadable documents.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Export a list view
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param view path string true "departments, batches, students, advisors or internships"
// @Param format query string false "csv (default) or pdf"
// @Param search query string false "Search term (students, advisors)"
// @Param batch query int false "Batch ID (students, internships)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /exports/{view} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "format must be csv or pdf"))
		return
	}
	batchID, err := optionalID(c, "batch")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exports.Render(c.Request.Context(), service.ExportRequest{
		View:    c.Param("view"),
		Format:  format,
		Search:  c.Query("search"),
		BatchID: batchID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.ContextAuditResourceKey, strings.ToLower(c.Param("view")))
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
