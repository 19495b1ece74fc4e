package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/middleware"
	"github.com/noah-isme/internship-admin/internal/models"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/response"
)

type createView interface {
	Load(ctx context.Context) error
	Options() dto.EntityOptions
	Create(ctx context.Context, kind models.EntityKind, fields map[string]string) (*dto.MutationResult, error)
}

// CreateHandler serves the "Add New Record" page.
type CreateHandler struct {
	view createView
}

// NewCreateHandler constructs a CreateHandler.
func NewCreateHandler(view createView) *CreateHandler {
	return &CreateHandler{view: view}
}

// Options godoc
// @Summary Create form description
// @Description Entity kinds with their fields plus the department and batch dropdowns
// @Tags Create
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /entities/options [get]
func (h *CreateHandler) Options(c *gin.Context) {
	if err := h.view.Load(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.view.Options())
}

// Create godoc
// @Summary Create a record
// @Tags Create
// @Accept json
// @Produce json
// @Param payload body dto.CreateEntityRequest true "Kind and field values"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /entities [post]
func (h *CreateHandler) Create(c *gin.Context) {
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid create payload"))
		return
	}
	kind, _ := models.ParseEntityKind(req.Kind)
	result, err := h.view.Create(c.Request.Context(), kind, req.Fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Set(middleware.ContextAuditResourceKey, kindSlug(kind))
	response.Created(c, result.Notice, result)
}

func kindSlug(kind models.EntityKind) string {
	switch kind {
	case models.EntityStudent:
		return "students"
	case models.EntityCourseAdvisor:
		return "advisors"
	case models.EntityBatch:
		return "batches"
	case models.EntityDepartment:
		return "departments"
	}
	return "entities"
}
