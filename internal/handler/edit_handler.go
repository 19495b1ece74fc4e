package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/internship-admin/internal/dto"
	"github.com/noah-isme/internship-admin/internal/models"
	"github.com/noah-isme/internship-admin/internal/service"
	appErrors "github.com/noah-isme/internship-admin/pkg/errors"
	"github.com/noah-isme/internship-admin/pkg/response"
)

type editableView interface {
	BeginEdit(ctx context.Context, id int64) (models.Draft, error)
	Draft() (models.Draft, bool)
	SetFields(values map[string]string) (models.Draft, error)
	Submit(ctx context.Context) (*dto.MutationResult, error)
	CancelEdit()
	Update(ctx context.Context, id int64, values map[string]string) (*dto.MutationResult, error)
	Delete(ctx context.Context, id int64, confirm service.Confirmer) (*dto.MutationResult, error)
}

// EditHandler drives the inline edit form and row deletion of one page.
type EditHandler struct {
	view editableView
}

// NewEditHandler constructs an EditHandler for view.
func NewEditHandler(view editableView) *EditHandler {
	return &EditHandler{view: view}
}

// BeginEdit godoc
// @Summary Open the edit form of a row
// @Tags Editing
// @Produce json
// @Param resource path string true "departments, batches, students or advisors"
// @Param id path int true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /{resource}/{id}/draft [post]
func (h *EditHandler) BeginEdit(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	draft, err := h.view.BeginEdit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// Draft godoc
// @Summary Current edit form
// @Tags Editing
// @Produce json
// @Param resource path string true "departments, batches, students or advisors"
// @Success 200 {object} response.Envelope
// @Router /{resource}/draft [get]
func (h *EditHandler) Draft(c *gin.Context) {
	draft, ok := h.view.Draft()
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no edit in progress"))
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// SetFields godoc
// @Summary Change fields of the edit form
// @Tags Editing
// @Accept json
// @Produce json
// @Param resource path string true "departments, batches, students or advisors"
// @Param payload body map[string]string true "Field values"
// @Success 200 {object} response.Envelope
// @Router /{resource}/draft [patch]
func (h *EditHandler) SetFields(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid field payload"))
		return
	}
	draft, err := h.view.SetFields(values)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, draft)
}

// Submit godoc
// @Summary Save the edit form
// @Tags Editing
// @Produce json
// @Param resource path string true "departments, batches, students or advisors"
// @Success 200 {object} response.Envelope
// @Router /{resource}/draft/submit [post]
func (h *EditHandler) Submit(c *gin.Context) {
	result, err := h.view.Submit(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, http.StatusOK, result.Notice, result)
}

// Cancel godoc
// @Summary Discard the edit form
// @Tags Editing
// @Param resource path string true "departments, batches, students or advisors"
// @Success 204
// @Router /{resource}/draft [delete]
func (h *EditHandler) Cancel(c *gin.Context) {
	h.view.CancelEdit()
	response.NoContent(c)
}

// Update godoc
// @Summary Edit and save a row in one call
// @Tags Editing
// @Accept json
// @Produce json
// @Param resource path string true "departments, batches, students or advisors"
// @Param id path int true "Record ID"
// @Param payload body map[string]string true "Field values"
// @Success 200 {object} response.Envelope
// @Router /{resource}/{id} [put]
func (h *EditHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid field payload"))
		return
	}
	result, err := h.view.Update(c.Request.Context(), id, values)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, http.StatusOK, result.Notice, result)
}

// Delete godoc
// @Summary Delete a row
// @Description Without confirm=true the confirmation prompt is returned with 428 and nothing is sent
// @Tags Editing
// @Produce json
// @Param resource path string true "departments, batches, students or advisors"
// @Param id path int true "Record ID"
// @Param confirm query bool false "Confirm the deletion"
// @Success 200 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /{resource}/{id} [delete]
func (h *EditHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.view.Delete(c.Request.Context(), id, confirmer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Notice(c, http.StatusOK, result.Notice, result)
}
